package concurrency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

func TestGuard_Check(t *testing.T) {
	key := models.NewKey("Acme", "Person", "42")
	stored := models.NewDataFromMap(map[string]string{"Name": "Ann", "ModifiedAt": "1"})

	guard := NewGuard("ModifiedAt")
	current := guard.CheckSum(key, stored)

	tests := []struct {
		incoming func() *models.Data
		name     string
		wantErr  bool
	}{
		{
			name: "matching checksum",
			incoming: func() *models.Data {
				d := models.NewDataFromMap(map[string]string{"Name": "Bob"})
				d.SetCheckSum(current)
				return d
			},
		},
		{
			name: "ignored checksum",
			incoming: func() *models.Data {
				d := models.NewDataFromMap(map[string]string{"Name": "Bob"})
				d.IgnoreCheckSum()
				return d
			},
		},
		{
			name: "stale checksum",
			incoming: func() *models.Data {
				d := models.NewDataFromMap(map[string]string{"Name": "Bob"})
				d.SetCheckSum("stale")
				return d
			},
			wantErr: true,
		},
		{
			name: "missing checksum",
			incoming: func() *models.Data {
				return models.NewDataFromMap(map[string]string{"Name": "Bob"})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Check(key, stored, tt.incoming())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			e, ok := matcherr.As(err)
			require.True(t, ok)
			assert.Equal(t, api.ErrorHasBeenUpdated, e.Type)
			assert.Equal(t, current, e.NewCheckSum)
			require.NotNil(t, e.NewData)
			v, _ := e.NewData.Property("Name")
			assert.Equal(t, "Ann", v)
		})
	}
}

func TestGuard_BlackListedChangeKeepsChecksum(t *testing.T) {
	key := models.NewKey("Acme", "Person", "42")
	guard := NewGuard("ModifiedAt")

	before := guard.CheckSum(key, models.NewDataFromMap(map[string]string{"Name": "Ann", "ModifiedAt": "1"}))
	after := guard.CheckSum(key, models.NewDataFromMap(map[string]string{"Name": "Ann", "ModifiedAt": "2"}))
	assert.Equal(t, before, after)
}
