package main

import (
	"fmt"
	"html"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// mockRegion tracks contingency and next change time for a single region.
type mockRegion struct {
	name         string
	active       bool
	since        time.Time
	nextChangeAt time.Time
}

// mockRegions are the authorizers listed on the mock status page.
var mockRegions = []string{
	"AM - Amazonas",
	"BA - Bahia",
	"MG - Minas Gerais",
	"RS - Rio Grande do Sul",
	"SP - São Paulo",
	"SVAN - Sefaz Virtual do Ambiente Nacional",
}

// StartMockStatusServer serves a SEFAZ-like availability page on
// /disponibilidade.aspx. Each region enters or leaves contingency every
// 20-60 seconds. Call this in a goroutine before creating the checker.
func StartMockStatusServer(addr string) {
	var mu sync.Mutex
	regions := make([]*mockRegion, len(mockRegions))
	for i, name := range mockRegions {
		regions[i] = &mockRegion{
			name:         name,
			since:        time.Now(),
			nextChangeAt: nextChange(),
		}
	}

	http.HandleFunc("/disponibilidade.aspx", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		now := time.Now()
		for _, reg := range regions {
			if now.After(reg.nextChangeAt) {
				reg.active = !reg.active
				reg.since = now
				reg.nextChangeAt = nextChange()
				slog.Info("contingency change", "region", reg.name, "active", reg.active)
			}
		}
		page := renderStatusPage(regions)
		mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}

func nextChange() time.Time {
	return time.Now().Add(time.Duration(20+rand.Intn(41)) * time.Second)
}

func renderStatusPage(regions []*mockRegion) string {
	var b strings.Builder
	b.WriteString("<html><body>\n<table class=\"tabelaResultado\">\n")
	b.WriteString("<tr><th>#</th><th>Autorizador</th><th>Serviço</th><th>Situação</th><th>Contingência</th></tr>\n")
	for i, reg := range regions {
		status := "Desativada"
		if reg.active {
			status = "Ativada"
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>NF-e</td><td>Normal</td><td>%s em %s</td></tr>\n",
			i+1, html.EscapeString(reg.name), status, reg.since.Format("02/01/2006 15:04:05"))
	}
	b.WriteString("</table>\n</body></html>\n")
	return b.String()
}
