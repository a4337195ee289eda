package adapters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/models/domain"
)

func TestMapReportItemDomainToApi_PopulatesOnlyTaggedField(t *testing.T) {
	number := domain.ReportItem{ID: "i1", ReportID: "r1", ItemKey: "attendance_count", Value: domain.NumberValue(42)}
	out := MapReportItemDomainToApi(number)
	assert.Equal(t, "number", out.ItemType)
	require.NotNil(t, out.ValueNumber)
	assert.Equal(t, float64(42), *out.ValueNumber)
	assert.Nil(t, out.ValueText)
	assert.Nil(t, out.ValueJSON)

	text := domain.ReportItem{ID: "i2", ReportID: "r1", ItemKey: "highlights", Value: domain.TextValue("youth night")}
	out = MapReportItemDomainToApi(text)
	assert.Equal(t, "text", out.ItemType)
	require.NotNil(t, out.ValueText)
	assert.Equal(t, "youth night", *out.ValueText)
	assert.Nil(t, out.ValueNumber)

	raw := json.RawMessage(`{"sections":3}`)
	jsonItem := domain.ReportItem{ID: "i3", ReportID: "r1", ItemKey: "structure", Value: domain.JSONValue(raw)}
	out = MapReportItemDomainToApi(jsonItem)
	assert.Equal(t, "json", out.ItemType)
	assert.Equal(t, raw, out.ValueJSON)
}

func TestMapReportItemInputApiToDomain_DiscardsUnusedFields(t *testing.T) {
	n := 7.0
	txt := "ignored"
	in := api.ReportItemInput{
		ItemKey:     "attendance_count",
		ItemType:    "number",
		ValueNumber: &n,
		ValueText:   &txt,
	}

	out := MapReportItemInputApiToDomain(in)
	assert.Equal(t, domain.ItemTypeNumber, out.Value.Type())
	got, ok := out.Value.Number()
	require.True(t, ok)
	assert.Equal(t, 7.0, got)
	_, ok = out.Value.Text()
	assert.False(t, ok)
}

func TestMapReportItemInputApiToDomain_UnknownTypeFallsBackToText(t *testing.T) {
	out := MapReportItemInputApiToDomain(api.ReportItemInput{ItemKey: "note", ItemType: "mystery"})
	assert.Equal(t, domain.ItemTypeText, out.Value.Type())
}
