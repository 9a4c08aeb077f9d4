package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSeasons(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/championships/ch-1/seasons", r.URL.Path)
		w.Write(jsonResponse([]map[string]any{
			{"id": "s-1", "name": "2026", "status": SeasonInProgress, "paymentMethods": []string{"pix"}},
		}))
	})

	items, err := client.ListSeasons("ch-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, SeasonInProgress, items[0].Status)
	assert.Equal(t, []string{"pix"}, items[0].PaymentMethods)
}

func TestCreateAndUpdateSeason(t *testing.T) {
	var methods []string
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		var body SeasonInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 450.5, body.InscriptionValue)
		w.Write(jsonResponse(map[string]any{"id": "s-1", "name": body.Name, "inscriptionValue": body.InscriptionValue}))
	})

	in := SeasonInput{ChampionshipID: "ch-1", Name: "2026", InscriptionValue: 450.5}
	created, err := client.CreateSeason(in)
	require.NoError(t, err)
	assert.Equal(t, "s-1", created.ID)

	_, err = client.UpdateSeason("s-1", in)
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /seasons", "PUT /seasons/s-1"}, methods)
}
