package service

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mosaicnetworks/broadcast/src/common"
	"github.com/mosaicnetworks/broadcast/src/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource node.Snapshot

func (s staticSource) Snapshot() node.Snapshot {
	return node.Snapshot(s)
}

func TestGetStats(t *testing.T) {
	source := staticSource{
		ID:        "n1",
		Neighbors: []string{"n2", "n3"},
		Delivered: []int64{1, 5},
		Seen:      map[string][]int64{"n3": {5}, "n2": {1}},
	}

	s := NewService("127.0.0.1:0", source, common.NewTestEntry(t, common.TestLogLevel))

	server := httptest.NewServer(s.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":"n1","neighbors":["n2","n3"],"delivered":[1,5],"seen":{"n2":[1],"n3":[5]}}`,
		string(body))

	var decoded node.Snapshot
	require.NoError(t, decoded.Unmarshal(body))
	assert.Equal(t, node.Snapshot(source), decoded)
}

func TestUnknownPath(t *testing.T) {
	s := NewService("127.0.0.1:0", staticSource{}, common.NewTestEntry(t, common.TestLogLevel))

	server := httptest.NewServer(s.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/graph")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
