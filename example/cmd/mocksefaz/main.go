// Standalone mock status page for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mocksefaz
//
// Then in another terminal, as often as you like:
//
//	go run ./cmd/sefazwatch check -c example/config.yaml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// regions and their contingency flags; every request past the deadline
// flips one region, round robin
var regions = []string{"AM - Amazonas", "BA - Bahia", "RS - Rio Grande do Sul", "SP - São Paulo"}

func main() {
	fmt.Println("Mock SEFAZ status page on http://localhost:9999/disponibilidade.aspx")
	fmt.Println("One region flips contingency every 30 seconds")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu         sync.Mutex
		active     = make([]bool, len(regions))
		next       int
		nextFlipAt = time.Now().Add(30 * time.Second)
	)

	http.HandleFunc("/disponibilidade.aspx", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if time.Now().After(nextFlipAt) {
			active[next] = !active[next]
			slog.Info("contingency change", "region", regions[next], "active", active[next])
			next = (next + 1) % len(regions)
			nextFlipAt = time.Now().Add(30 * time.Second)
		}
		snapshot := append([]bool(nil), active...)
		mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><table class="tabelaResultado">`)
		fmt.Fprint(w, `<tr><th>#</th><th>Autorizador</th><th>Serviço</th><th>Situação</th><th>Contingência</th></tr>`)
		for i, name := range regions {
			status := "Desativada"
			if snapshot[i] {
				status = "Ativada"
			}
			fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>NF-e</td><td>Normal</td><td>%s</td></tr>`, i+1, name, status)
		}
		fmt.Fprint(w, `</table></body></html>`)
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
