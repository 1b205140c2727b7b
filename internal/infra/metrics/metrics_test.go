//go:build !integration

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	MustRegister()
	MustRegister() // idempotent

	IncShorten(" OK ")
	IncStoreOp("get", "miss")
	IncTelegramCommand("/start")
	ObserveShortenerCall("adlinkfly", 12, true)
	SetBuildInfo("dev", "none")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics handler status %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`shorten_requests_total{outcome="ok"}`,
		`token_store_ops_total{op="get",result="miss"}`,
		`telegram_commands_received_total{command="/start"}`,
		`build_info{commit="none",version="dev"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition is missing %s", want)
		}
	}
}
