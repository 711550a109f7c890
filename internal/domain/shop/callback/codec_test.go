package callback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		data    Data
		encoded string
	}{
		{"show plans", ShowPlans(), "plans"},
		{"main menu", MainMenu(), "menu"},
		{"offer", SelectOffer("vip_movies"), "offer:vip_movies"},
		{"purchase", Purchase("vip_movies"), "buy:vip_movies"},
		{"all access", Purchase(entities.AllAccessKey), "buy:all-access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, encoded)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestDecode_Legacy(t *testing.T) {
	tests := []struct {
		raw  string
		want Data
	}{
		{"show_plans", ShowPlans()},
		{"main_menu", MainMenu()},
		{"plan_vip_movies", SelectOffer("vip_movies")},
		{"purchase_vip_movies", Purchase("vip_movies")},
		{"plan_server_premium", SelectOffer(entities.AllAccessKey)},
		{"purchase_server_premium", Purchase(entities.AllAccessKey)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_KeyWithSeparatorsSplitsOnce(t *testing.T) {
	got, err := Decode("buy:a:b_c")
	require.NoError(t, err)
	assert.Equal(t, Purchase("a:b_c"), got)
}

func TestDecode_Unknown(t *testing.T) {
	for _, raw := range []string{"", "offer:", "buy:", "plan_", "purchase_", "something"} {
		_, err := Decode(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, shoperrors.ErrUnknownCallback)
	}
}

func TestEncode_RejectsOversizedData(t *testing.T) {
	_, err := Encode(Purchase(strings.Repeat("k", MaxDataLength)))

	require.Error(t, err)
	assert.ErrorIs(t, err, shoperrors.ErrCallbackTooLong)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestEncode_RejectsEmptyKey(t *testing.T) {
	_, err := Encode(SelectOffer(""))
	require.Error(t, err)
}
