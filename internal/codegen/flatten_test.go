package codegen_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railsgen/internal/model"
)

func newPetSchema() *model.Schema {
	return &model.Schema{
		Name: "NewPet",
		Type: "object",
		Properties: []model.Property{
			{Name: "name", Schema: stringSchema()},
			{Name: "tag", Schema: &model.Schema{Ref: "Tag"}},
		},
		Required: []string{"name"},
	}
}

func TestFlattenSkipsReferencedProperties(t *testing.T) {
	p, hook := newProcessor(t)
	o := op("POST", "/pet", "addPet", "pet")
	o.BodyParam = &model.Parameter{BaseName: "body", In: model.ParamInBody, Schema: &model.Schema{Ref: "NewPet"}}
	catalog := map[string]*model.Schema{
		"NewPet": newPetSchema(),
		"Tag":    {Name: "Tag", Type: "object"},
	}

	params := p.FlattenBodyParameters(o, catalog)

	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Name)
	assert.True(t, params[0].Required)
	assert.Equal(t, "String", params[0].DataType)
	assert.Equal(t, "nil", params[0].DefaultValue)
	assert.Equal(t, model.ParamInBody, params[0].In)
	assert.Equal(t, params, o.AllParams)
	assert.Equal(t, "NewPet", o.BodyParam.DataType)
	assert.Len(t, catalog["NewPet"].Properties, 2, "catalog must not be modified")

	var skipped bool
	for _, e := range hook.AllEntries() {
		if e.Data["property"] == "tag" {
			skipped = true
		}
	}
	assert.True(t, skipped, "skipping a referenced property is logged")
}

func TestFlattenMergesDeclaredParameters(t *testing.T) {
	p, _ := newProcessor(t)
	o := op("PUT", "/pet/{petId}", "updatePet", "pet")
	o.AllParams = []*model.Parameter{
		{BaseName: "petId", In: model.ParamInPath, Required: true, Schema: &model.Schema{Type: "integer", Format: "int64"}},
		{BaseName: "X-Request-Id", In: model.ParamInHeader, Schema: stringSchema()},
	}
	o.BodyParam = &model.Parameter{BaseName: "body", In: model.ParamInBody, Schema: &model.Schema{
		Type: "object",
		Properties: []model.Property{
			{Name: "status", Schema: stringSchema()},
			{Name: "petId", Schema: &model.Schema{Type: "integer"}},
			{Name: "weight", Schema: &model.Schema{Type: "number", Format: "double"}},
		},
	}}

	params := p.FlattenBodyParameters(o, nil)

	var names []string
	for _, prm := range params {
		names = append(names, prm.Name)
	}
	assert.Equal(t, []string{"pet_id", "x_request_id", "status", "weight"}, names)
	assert.Equal(t, "Integer", params[0].DataType)
	assert.False(t, params[2].Required, "no required set means optional")
	assert.Equal(t, "BigDecimal", params[3].DataType)
}

func TestFlattenUnresolvedBodyKeepsDeclared(t *testing.T) {
	p, _ := newProcessor(t)
	o := op("POST", "/pet", "addPet", "pet")
	o.AllParams = []*model.Parameter{{BaseName: "api_key", In: model.ParamInHeader, Schema: stringSchema()}}
	o.BodyParam = &model.Parameter{BaseName: "body", In: model.ParamInBody, Schema: &model.Schema{Ref: "Missing"}}

	params := p.FlattenBodyParameters(o, map[string]*model.Schema{})

	require.Len(t, params, 1)
	assert.Equal(t, "api_key", params[0].Name)
}

func TestFlattenWithoutBodyMayBeEmpty(t *testing.T) {
	p, _ := newProcessor(t)
	o := op("GET", "/store/inventory", "getInventory", "store")

	params := p.FlattenBodyParameters(o, nil)

	assert.Empty(t, params)
}

func TestFlattenIsRepeatable(t *testing.T) {
	p, _ := newProcessor(t)
	o := op("POST", "/pet", "addPet", "pet")
	o.BodyParam = &model.Parameter{BaseName: "body", In: model.ParamInBody, Schema: &model.Schema{Ref: "NewPet"}}
	catalog := map[string]*model.Schema{"NewPet": newPetSchema()}

	p.FlattenBodyParameters(o, catalog)
	params := p.FlattenBodyParameters(o, catalog)

	assert.Len(t, params, 1)
}

func TestFlattenRenamesCollidingNames(t *testing.T) {
	p, hook := newProcessor(t)
	o := op("GET", "/pet/{petId}", "getPet", "pet")
	o.AllParams = []*model.Parameter{
		{BaseName: "petId", In: model.ParamInPath, Required: true, Schema: stringSchema()},
		{BaseName: "pet_id", In: model.ParamInHeader, Schema: stringSchema()},
		{BaseName: "pet-id", In: model.ParamInQuery, Schema: stringSchema()},
		{BaseName: "petId", In: model.ParamInQuery, Schema: stringSchema()},
	}

	params := p.FlattenBodyParameters(o, nil)

	require.Len(t, params, 3)
	assert.Equal(t, []string{"pet_id", "pet_id_1", "pet_id_2"}, []string{params[0].Name, params[1].Name, params[2].Name})
	assert.Equal(t, []string{"petId", "pet_id", "pet-id"}, []string{params[0].BaseName, params[1].BaseName, params[2].BaseName})

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 3, warnings, "two renames and one skipped duplicate")
}

func TestFlattenNamesUnusableParameters(t *testing.T) {
	p, hook := newProcessor(t)
	o := op("GET", "/pet", "findPets", "pet")
	o.AllParams = []*model.Parameter{
		{BaseName: "名前", In: model.ParamInQuery, Schema: stringSchema()},
		{BaseName: "ペット", In: model.ParamInQuery, Schema: stringSchema()},
		{BaseName: "[]", In: model.ParamInQuery, Schema: stringSchema()},
	}

	params := p.FlattenBodyParameters(o, nil)

	require.Len(t, params, 3)
	assert.Equal(t, "名前", params[0].Name)
	assert.Equal(t, "ペット", params[1].Name)
	assert.Equal(t, "param_3", params[2].Name)
	assert.Equal(t, "[]", params[2].BaseName)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "param_3", entry.Data["renamed_to"])
}
