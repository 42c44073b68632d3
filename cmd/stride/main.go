package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/stride-app/stride/internal/config"
	"github.com/stride-app/stride/internal/gateway"
	"github.com/stride-app/stride/internal/tui"
)

func main() {
	addr := flag.String("addr", config.DefaultListenAddr, "address of the strided daemon")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stride is an interactive client and needs a terminal")
		os.Exit(1)
	}

	gw := gateway.NewClient("http://" + *addr)
	p := tea.NewProgram(tui.New(gw), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "stride: %v\n", err)
		os.Exit(1)
	}
}
