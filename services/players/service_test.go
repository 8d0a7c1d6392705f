package players

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const outfieldPage = `<html><body>
	<span class="role" title="Attaccante"></span>
	<span class="role role-mantra" title="A"></span>
	<a class="team-name team-link"><meta content="Atalanta"></a>
	<span class="badge badge-primary avg">6,5</span>
	<div class="description">Quick winger.</div>
	<table>
		<tr><td class="value">10</td></tr>
		<tr><td class="value">4</td></tr>
		<tr><td class="value">2</td></tr>
	</table>
	<span class="pill">3/1</span>
	<span class="pill">2</span>
	<span class="pill">1/2</span>
	<span class="pill">0</span>
	<span class="pill">0</span>
	<div class="x-axis"></div>
	<div class="x-axis">
		<span data-primary-value="1" data-secondary-value=""></span>
	</div>
	<span class="grade" data-value="6,5"></span>
	<span class="fanta-grade" data-value="7"></span>
	<span class="team-home">Ata</span>
	<span class="team-home">fake</span>
	<span class="team-home">fake</span>
	<span class="match-score">2-1</span>
	<span class="match-score">fake</span>
	<span class="match-score">fake</span>
	<span class="sub-in" data-minute=""></span>
</body></html>`

const goalkeeperPage = `<html><body>
	<span class="role" title="Portiere"></span>
	<span class="role role-mantra" title="Por"></span>
	<a class="team-name team-link"><meta content="Inter"></a>
	<span class="badge badge-primary avg">6</span>
	<div class="description">Shot stopper.</div>
	<table>
		<tr><td class="value">35</td></tr>
		<tr><td class="value">40</td></tr>
		<tr><td class="value">1</td></tr>
	</table>
	<span class="pill">22/18</span>
	<span class="pill">2</span>
	<span class="pill">3</span>
	<span class="pill">0</span>
	<span class="pill">1</span>
</body></html>`

// setupApi stands up a fake source site plus the service under test and
// returns the api base url and the upstream base url.
func setupApi(t *testing.T) (api string, upstream string) {
	cleanup := telemetry.SetupForTesting(t, "test:services/players")
	t.Cleanup(cleanup)

	mux := http.NewServeMux()
	mux.HandleFunc("/quotazioni-fantacalcio/2024-25/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="container"><div class="table-overflow"><table>
			<tr><td><a class="player-name player-link" href="http://%s/lookman/4730/2024-25">Lookman</a></td></tr>
		</table></div></div></body></html>`, r.Host)
	})
	mux.HandleFunc("/lookman/4730/2024-25", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, outfieldPage)
	})
	mux.HandleFunc("/sommer/2793/2024-25", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, goalkeeperPage)
	})
	mux.HandleFunc("/broken/1/2024-25", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	})
	mux.HandleFunc("/down/1/2024-25", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	source := httptest.NewServer(mux)
	t.Cleanup(source.Close)

	service := NewService(fantacalcio.NewClient(fantacalcio.ClientOptions{BaseUrl: source.URL}))
	server := httptest.NewServer(service.Handler())
	t.Cleanup(server.Close)

	return server.URL, source.URL
}

func postLink(t *testing.T, url string, link fantacalcio.PlayerLink) *http.Response {
	body, err := json.Marshal(link)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeData[T any](t *testing.T, res *http.Response) T {
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return envelope.Data
}

func decodeError(t *testing.T, res *http.Response) string {
	var envelope struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return envelope.Error
}

func TestPlayerLinksRoute(t *testing.T) {
	api, _ := setupApi(t)

	res, err := http.Get(api + "/v1/players-links/2024-25")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	links := decodeData[[]fantacalcio.PlayerLink](t, res)
	require.Len(t, links, 1)
	require.Equal(t, "Lookman", links[0].Name)
}

func TestPlayerLinksRouteInvalidSeason(t *testing.T) {
	api, _ := setupApi(t)

	res, err := http.Get(api + "/v1/players-links/not-a-season")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, decodeError(t, res), "not-a-season")
}

func TestMatchesStatsRoute(t *testing.T) {
	api, upstream := setupApi(t)

	res := postLink(t, api+"/v1/matches-stats", fantacalcio.PlayerLink{
		Name: "Lookman",
		Link: upstream + "/lookman/4730/2024-25",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	records := decodeData[[]fantacalcio.MatchDayRecord](t, res)
	require.Len(t, records, 1)
	require.Equal(t, "Ata", records[0].HomeTeam)
	require.Equal(t, 2, records[0].HomeScore)
}

func TestMatchesStatsRouteBadBody(t *testing.T) {
	api, _ := setupApi(t)

	res, err := http.Post(api+"/v1/matches-stats", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = postLink(t, api+"/v1/matches-stats", fantacalcio.PlayerLink{Name: "no-link"})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSummaryRoutes(t *testing.T) {
	api, upstream := setupApi(t)

	res := postLink(t, api+"/v1/player-summary-stats/outfield", fantacalcio.PlayerLink{
		Name: "Lookman",
		Link: upstream + "/lookman/4730/2024-25",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	outfield := decodeData[fantacalcio.PlayerSeasonSummary](t, res)
	require.Equal(t, "Attaccante", outfield.Role)
	require.NotNil(t, outfield.Outfield)

	res = postLink(t, api+"/v1/player-summary-stats/goalkeeper", fantacalcio.PlayerLink{
		Name: "Sommer",
		Link: upstream + "/sommer/2793/2024-25",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	keeper := decodeData[fantacalcio.PlayerSeasonSummary](t, res)
	require.Equal(t, "Portiere", keeper.Role)
	require.NotNil(t, keeper.Goalkeeper)
}

func TestSummaryRouteRoleMismatch(t *testing.T) {
	api, upstream := setupApi(t)

	res := postLink(t, api+"/v1/player-summary-stats/goalkeeper", fantacalcio.PlayerLink{
		Name: "Lookman",
		Link: upstream + "/lookman/4730/2024-25",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = postLink(t, api+"/v1/player-summary-stats/outfield", fantacalcio.PlayerLink{
		Name: "Sommer",
		Link: upstream + "/sommer/2793/2024-25",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, decodeError(t, res), "Portiere")
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	api, upstream := setupApi(t)

	res := postLink(t, api+"/v1/matches-stats", fantacalcio.PlayerLink{
		Name: "Down",
		Link: upstream + "/down/1/2024-25",
	})
	require.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestStructureFailureIsInternalError(t *testing.T) {
	api, upstream := setupApi(t)

	res := postLink(t, api+"/v1/matches-stats", fantacalcio.PlayerLink{
		Name: "Broken",
		Link: upstream + "/broken/1/2024-25",
	})
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
