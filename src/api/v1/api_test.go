package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/philipjonsen/cryptopunks/base/xhttp"
	"github.com/philipjonsen/cryptopunks/src/api/router"
	"github.com/philipjonsen/cryptopunks/src/market"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

var (
	adminAddr = "0x00000000000000000000000000000000000000Aa"
	userAAddr = "0x0000000000000000000000000000000000000001"
	userBAddr = "0x0000000000000000000000000000000000000002"
)

type acceptAllTreasury struct{}

func (acceptAllTreasury) Transfer(common.Address, uint64) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *market.Market) {
	t.Helper()
	m := market.New(common.HexToAddress(adminAddr), acceptAllTreasury{})
	svcCtx := svc.NewServerCtx(svc.WithMarket(m))
	srv := httptest.NewServer(router.NewRouter(svcCtx))
	t.Cleanup(srv.Close)
	return srv, m
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) xhttp.Response {
	t.Helper()
	defer resp.Body.Close()
	var out xhttp.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestDistributionAndClaimFlow(t *testing.T) {
	srv, m := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/distribution/assign", map[string]interface{}{
		"caller": adminAddr, "to": userAAddr, "asset_id": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)

	resp = postJSON(t, srv.URL+"/api/v1/distribution/finalize", map[string]interface{}{
		"caller": adminAddr,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)

	resp = postJSON(t, srv.URL+"/api/v1/assets/7/claim", map[string]interface{}{
		"caller": userBAddr,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)

	owner, ok := m.OwnerOf(7)
	require.True(t, ok)
	require.Equal(t, common.HexToAddress(userBAddr), owner)
}

func TestAssignRejectsNonAdmin(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/distribution/assign", map[string]interface{}{
		"caller": userAAddr, "to": userAAddr, "asset_id": 0,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decodeBody(t, resp)
}

func TestAssignRejectsMalformedAddress(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/distribution/assign", map[string]interface{}{
		"caller": "not-an-address", "to": userAAddr, "asset_id": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp)
}

func TestRestrictedBuyFlow(t *testing.T) {
	srv, m := newTestServer(t)
	admin := common.HexToAddress(adminAddr)
	userA := common.HexToAddress(userAAddr)
	require.NoError(t, m.AssignInitialOwner(admin, userA, 5))
	require.NoError(t, m.FinalizeDistribution(admin))

	resp := postJSON(t, srv.URL+"/api/v1/assets/5/offer", map[string]interface{}{
		"caller": userAAddr, "min_price": 1000, "only_sell_to": userBAddr,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)

	// Wrong buyer is rejected.
	other := "0x0000000000000000000000000000000000000003"
	resp = postJSON(t, srv.URL+"/api/v1/assets/5/buy", map[string]interface{}{
		"caller": other, "value": 1000,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decodeBody(t, resp)

	resp = postJSON(t, srv.URL+"/api/v1/assets/5/buy", map[string]interface{}{
		"caller": userBAddr, "value": 1000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)

	require.Equal(t, uint64(1000), m.PendingOf(userA))
}

func TestAssetDetail(t *testing.T) {
	srv, m := newTestServer(t)
	admin := common.HexToAddress(adminAddr)
	userA := common.HexToAddress(userAAddr)
	userB := common.HexToAddress(userBAddr)
	require.NoError(t, m.AssignInitialOwner(admin, userA, 9))
	require.NoError(t, m.FinalizeDistribution(admin))
	require.NoError(t, m.OfferForSale(userA, 9, 500, nil))
	require.NoError(t, m.EnterBid(userB, 9, 100))

	resp, err := http.Get(srv.URL + "/api/v1/assets/9")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var detail struct {
		Owner string `json:"owner"`
		Offer *struct {
			MinPrice uint64 `json:"min_price"`
		} `json:"offer"`
		Bid *struct {
			Bidder string `json:"bidder"`
			Value  uint64 `json:"value"`
		} `json:"bid"`
	}
	require.NoError(t, json.Unmarshal(raw, &detail))
	require.Equal(t, userA.Hex(), detail.Owner)
	require.NotNil(t, detail.Offer)
	require.Equal(t, uint64(500), detail.Offer.MinPrice)
	require.NotNil(t, detail.Bid)
	require.Equal(t, userB.Hex(), detail.Bid.Bidder)
	require.Equal(t, uint64(100), detail.Bid.Value)
}

func TestStatsEndpoint(t *testing.T) {
	srv, m := newTestServer(t)
	require.NoError(t, m.FinalizeDistribution(common.HexToAddress(adminAddr)))
	require.NoError(t, m.ClaimAsset(common.HexToAddress(userAAddr), 0))

	resp, err := http.Get(srv.URL + "/api/v1/stats")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var stats market.Stats
	require.NoError(t, json.Unmarshal(raw, &stats))
	require.Equal(t, uint64(market.TotalSupply-1), stats.Remaining)
	require.True(t, stats.TradingOpen)
}

func TestAssetIndexValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/assets/abc", "/api/v1/assets/-1"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, fmt.Sprintf("path %s", path))
		resp.Body.Close()
	}
}
