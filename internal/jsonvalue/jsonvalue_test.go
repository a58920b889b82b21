package jsonvalue_test

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestNewAndDecodeRoundTrip(t *testing.T) {
	v, err := jsonvalue.New(payload{Name: "cloze", N: 3})
	require.NoError(t, err)

	var out payload
	require.NoError(t, v.Decode(&out))
	assert.Equal(t, payload{Name: "cloze", N: 3}, out)
}

func TestNewNil(t *testing.T) {
	v, err := jsonvalue.New(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDecodeEmptyIsNoOp(t *testing.T) {
	var v jsonvalue.Value
	var out payload
	assert.NoError(t, v.Decode(&out))
	assert.Equal(t, payload{}, out)
}

func TestValuerAndScanner(t *testing.T) {
	v, err := jsonvalue.New(payload{Name: "x", N: 1})
	require.NoError(t, err)

	dv, err := v.Value()
	require.NoError(t, err)
	assert.IsType(t, "", dv)

	var scanned jsonvalue.Value
	require.NoError(t, scanned.Scan(dv.(driver.Value)))
	var out payload
	require.NoError(t, scanned.Decode(&out))
	assert.Equal(t, payload{Name: "x", N: 1}, out)
}

func TestScanNull(t *testing.T) {
	var v jsonvalue.Value
	require.NoError(t, v.Scan(nil))
	assert.True(t, v.IsNull())
}

func TestValueNull(t *testing.T) {
	var v jsonvalue.Value
	dv, err := v.Value()
	require.NoError(t, err)
	assert.Nil(t, dv)
}

func TestMarshalUnmarshalJSON(t *testing.T) {
	v, err := jsonvalue.New(payload{Name: "a", N: 2})
	require.NoError(t, err)

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var back jsonvalue.Value
	require.NoError(t, json.Unmarshal(b, &back))
	var out payload
	require.NoError(t, back.Decode(&out))
	assert.Equal(t, payload{Name: "a", N: 2}, out)
}

func TestMarshalNullValue(t *testing.T) {
	var v jsonvalue.Value
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestUnmarshalNullJSON(t *testing.T) {
	var v jsonvalue.Value
	require.NoError(t, json.Unmarshal([]byte("null"), &v))
	assert.True(t, v.IsNull())
}

func TestValueNestedInStruct(t *testing.T) {
	type wrapper struct {
		Data jsonvalue.Value `json:"data"`
	}
	inner, err := jsonvalue.New(payload{Name: "nested", N: 9})
	require.NoError(t, err)

	b, err := json.Marshal(wrapper{Data: inner})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"name":"nested","n":9}}`, string(b))
}
