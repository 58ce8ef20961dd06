package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/agent"
	"github.com/HavishJadav/mkonnekt-assignment/internal/ai"
	"github.com/HavishJadav/mkonnekt-assignment/internal/config"
	"github.com/HavishJadav/mkonnekt-assignment/internal/salesapi"
)

func main() {
	cfg := config.Load()

	client := salesapi.NewClient(cfg.SalesAPIURL, cfg.FetchTimeout)
	summarizer := ai.NewSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel)
	insight := agent.New(client, summarizer, cfg.FetchTimeout)

	fmt.Println("🧠 Sales Insight Agent (Gemini Edition)")
	fmt.Println("Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nAsk your sales question: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if lowered := strings.ToLower(question); lowered == "quit" || lowered == "exit" {
			break
		}

		// One turn, fully synchronous. Whatever happens comes back as a
		// value, so a bad turn never kills the loop.
		ans := insight.Answer(context.Background(), question, time.Now())

		switch ans.Outcome {
		case agent.OutcomeAnswered:
			fmt.Println("\n📟 Insight:")
			if ans.Summary != "" {
				fmt.Println(ans.Summary)
			} else {
				fmt.Println(ai.Fallback(ans, "no summarizer"))
			}
		default:
			fmt.Println("⚠️ " + ans.Message)
		}
		fmt.Println(strings.Repeat("-", 80))
	}
}
