// Package cli provides an interactive line-at-a-time spell-checking loop,
// used by cmd/nuspell for testing and debugging a loaded Dictionary.
package cli

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"

	"github.com/bsiegert/nuspell/pkg/nuspell"
	"github.com/bsiegert/nuspell/pkg/suggest"
)

var (
	correctStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2a9d8f", Dark: "#4ec9b0"})
	misspelledStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#c1121f", Dark: "#f07178"})
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
)

// InputHandler reads words from stdin, spell-checks each against a
// Dictionary, and on a miss prints the Suggestor's candidates.
type InputHandler struct {
	dict         *nuspell.Dictionary
	suggestor    *suggest.Suggestor
	maxDisplayed int
	showSuggest  bool
}

// NewInputHandler creates a new spell-check input handler.
func NewInputHandler(dict *nuspell.Dictionary, suggestor *suggest.Suggestor, maxDisplayed int, showSuggest bool) *InputHandler {
	return &InputHandler{
		dict:         dict,
		suggestor:    suggestor,
		maxDisplayed: maxDisplayed,
		showSuggest:  showSuggest,
	}
}

// Start begins the REPL loop.
func (h *InputHandler) Start() error {
	log.Print("nuspell CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to check it (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		h.handleInput(word)
	}
}

// handleInput checks a single word and, on a miss, prints suggestions.
func (h *InputHandler) handleInput(word string) {
	start := time.Now()
	ok := h.dict.Spell(word)
	elapsed := time.Since(start)

	if ok {
		log.Printf("%s %s", correctStyle.Render("correct"), word)
		return
	}

	log.Printf("%s %s (%v)", misspelledStyle.Render("misspelled"), word, elapsed)
	if !h.showSuggest || h.suggestor == nil {
		return
	}

	suggestions := h.suggestor.Suggest(word)
	if len(suggestions) == 0 {
		log.Warn("no suggestions found")
		return
	}
	if len(suggestions) > h.maxDisplayed {
		suggestions = suggestions[:h.maxDisplayed]
	}
	for i, s := range suggestions {
		log.Printf("%2d. %s", i+1, suggestionStyle.Render(s))
	}
}
