package configsuite_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/configsuite"
	"github.com/equinor/configsuite/schema"
)

func carSchema() *schema.Record {
	return record(
		field("brand", basic(schema.String)),
		field("seats", &schema.Basic{Type: schema.Integer, Attrs: schema.Attrs{Default: int64(5)}}),
		field("weight", &schema.Basic{Type: schema.Number, Attrs: schema.Attrs{AllowNone: true}}),
		field("electric", basic(schema.Bool)),
		field("built", basic(schema.Date)),
		field("service", &schema.Basic{Type: schema.String, Attrs: schema.Attrs{Default: "90m"}}),
		field("owner", record(field("name", basic(schema.String)))),
		field("tires", &schema.List{Item: record(field("pressure", basic(schema.Number)))}),
		field("incidents", &schema.Map{Key: basic(schema.String), Value: basic(schema.String)}),
	)
}

func carConfig() map[string]any {
	return map[string]any{
		"brand":     "Volvo",
		"weight":    1500.5,
		"electric":  true,
		"built":     time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
		"owner":     map[string]any{"name": "Kari"},
		"tires":     []any{map[string]any{"pressure": 2.1}, map[string]any{"pressure": 2}},
		"incidents": map[string]any{"2021": "scratch", "2020": "dent"},
	}
}

func TestSnapshot_TypedAccessors(t *testing.T) {
	s := configsuite.MustNew(carConfig(), carSchema())
	require.True(t, s.Valid(), "%v", s.Errors())
	car := snapshotRecord(t, s)

	assert.Equal(t, []string{"brand", "seats", "weight", "electric", "built", "service", "owner", "tires", "incidents"}, car.Fields())

	brand, err := car.GetString("brand")
	require.NoError(t, err)
	assert.Equal(t, "Volvo", brand)

	seats, err := car.GetInt("seats")
	require.NoError(t, err)
	assert.Equal(t, 5, seats)

	weight, err := car.GetFloat("weight")
	require.NoError(t, err)
	assert.Equal(t, 1500.5, weight)

	electric, err := car.GetBool("electric")
	require.NoError(t, err)
	assert.True(t, electric)

	built, err := car.GetTime("built")
	require.NoError(t, err)
	assert.Equal(t, 2019, built.Year())

	owner := car.GetRecord("owner")
	require.NotNil(t, owner)
	name, _ := owner.GetString("name")
	assert.Equal(t, "Kari", name)

	tires := car.GetList("tires")
	require.Equal(t, 2, tires.Len())
	p, err := configsuite.AsFloat(tires.At(1).(*configsuite.Record).Get("pressure"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p)

	incidents := car.GetMap("incidents")
	assert.Equal(t, []string{"2020", "2021"}, incidents.Keys())
	v, ok := incidents.Lookup("2021")
	assert.True(t, ok)
	assert.Equal(t, "scratch", v)
	_, ok = incidents.Lookup("1999")
	assert.False(t, ok)

	_, err = car.GetString("seats")
	assert.Error(t, err)
	_, err = car.GetString("colour")
	assert.Error(t, err)
	assert.Nil(t, car.GetList("owner"))
}

func TestSnapshot_AccessorErrors(t *testing.T) {
	_, err := configsuite.AsInt(nil)
	assert.ErrorIs(t, err, configsuite.ErrUnset)

	_, err = configsuite.AsInt(uint64(math.MaxUint64))
	assert.Error(t, err)

	n, err := configsuite.AsInt64(uint32(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = configsuite.AsFloat("1.5")
	assert.Error(t, err)

	_, err = configsuite.AsTime("2020-01-01")
	assert.Error(t, err)
}

func TestAsFloat_Integers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 3, 3},
		{"int64", int64(-4), -4},
		{"uint32", uint32(5), 5},
		{"uint", uint(7), 7},
		{"uint64 beyond int64", uint64(1) << 63, 9.223372036854775808e18},
		{"max uint64", uint64(math.MaxUint64), float64(math.MaxUint64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := configsuite.AsFloat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := configsuite.AsFloat(nil)
	assert.ErrorIs(t, err, configsuite.ErrUnset)
}

func TestSnapshot_NoneField(t *testing.T) {
	raw := carConfig()
	delete(raw, "weight")
	car := snapshotRecord(t, configsuite.MustNew(raw, carSchema()))
	assert.True(t, car.Has("weight"))
	_, err := car.GetFloat("weight")
	assert.ErrorIs(t, err, configsuite.ErrUnset)
}

type owner struct {
	Name string `config:"name"`
}

type tire struct {
	Pressure float64 `config:"pressure"`
}

type car struct {
	Brand     string            `config:"brand"`
	Seats     int               `config:"seats"`
	Weight    *float64          `config:"weight"`
	Electric  bool              `config:"electric"`
	Built     time.Time         `config:"built"`
	Service   time.Duration     `config:"service"`
	Owner     owner             `config:"owner"`
	Tires     []tire            `config:"tires"`
	Incidents map[string]string `config:"incidents"`
}

func TestSuite_Decode(t *testing.T) {
	s := configsuite.MustNew(carConfig(), carSchema())
	var c car
	require.NoError(t, s.Decode(&c))
	assert.Equal(t, "Volvo", c.Brand)
	assert.Equal(t, 5, c.Seats)
	require.NotNil(t, c.Weight)
	assert.Equal(t, 1500.5, *c.Weight)
	assert.Equal(t, 90*time.Minute, c.Service)
	assert.Equal(t, time.March, c.Built.Month())
	assert.Equal(t, "Kari", c.Owner.Name)
	assert.Equal(t, []tire{{2.1}, {2}}, c.Tires)
	assert.Equal(t, map[string]string{"2020": "dent", "2021": "scratch"}, c.Incidents)

	invalid := configsuite.MustNew(map[string]any{"brand": 1}, carSchema())
	err := invalid.Decode(&c)
	require.Error(t, err)
	_, ok := configsuite.AsErrors(err)
	assert.True(t, ok)
}

func TestToNative(t *testing.T) {
	s := configsuite.MustNew(carConfig(), carSchema())
	native := configsuite.ToNative(s.Snapshot()).(map[string]any)
	assert.Equal(t, int64(5), native["seats"])
	assert.Equal(t, map[string]any{"name": "Kari"}, native["owner"])
	assert.Equal(t, []any{map[string]any{"pressure": 2.1}, map[string]any{"pressure": 2}}, native["tires"])
	assert.Nil(t, configsuite.ToNative((*configsuite.Record)(nil)))
}
