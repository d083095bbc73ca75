// Command pplx is a small terminal front end for the Perplexity
// chat-completions API: an interactive chat loop, one-shot questions, and
// citation fetching.
//
// The API key is read from PPLX_API_KEY (or PERPLEXITY_API_KEY); .env files
// are loaded automatically.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"pplxgo/internal/utils"
	"pplxgo/perplexity"
	"pplxgo/webfetch"
)

var cli struct {
	Model  string `short:"m" default:"sonar" help:"Model to use for completions."`
	System string `short:"s" default:"You are a helpful assistant." help:"System role for the conversation."`

	Chat struct{} `cmd:"" default:"1" help:"Interactive chat session. Type 'exit' to quit."`
	Ask  struct {
		Question []string `arg:"" help:"Question to ask."`
		Type     string   `short:"t" default:"llm_response" help:"Response view to print: raw, text, json, or llm_response."`
	} `cmd:"" help:"Ask a single question and print the requested view."`
	Sources struct {
		Question []string `arg:"" help:"Question to ask."`
	} `cmd:"" help:"Ask a question, then print each cited source as Markdown."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pplx"),
		kong.Description("A terminal client for the Perplexity chat-completions API."),
	)

	apiKey := os.Getenv("PPLX_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("PERPLEXITY_API_KEY")
	}

	client, err := perplexity.New(apiKey, cli.Model, cli.System)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	switch kctx.Command() {
	case "chat":
		err = runChat(ctx, client)
	case "ask <question>":
		err = runAsk(ctx, client, strings.Join(cli.Ask.Question, " "), cli.Ask.Type)
	case "sources <question>":
		err = runSources(ctx, client, strings.Join(cli.Sources.Question, " "))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runChat(ctx context.Context, client *perplexity.Client) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter a message. Enter 'exit' to quit: ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "exit" {
			break
		}
		if message == "" {
			continue
		}

		resp, err := client.Chat(ctx, message)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(resp.Content())
	}
	fmt.Println("Goodbye!")
	return scanner.Err()
}

func runAsk(ctx context.Context, client *perplexity.Client, question, viewName string) error {
	responseType, err := perplexity.ParseResponseType(viewName)
	if err != nil {
		return err
	}

	resp, err := client.Ask(ctx, question, perplexity.WithResponseType(responseType))
	if err != nil {
		return err
	}

	switch responseType {
	case perplexity.TypeRaw:
		fmt.Println(resp.Raw().Status)
		fmt.Println(resp.Text())
	case perplexity.TypeJSON:
		fmt.Println(utils.JSONToString(resp.JSON(), true))
	default:
		fmt.Println(resp.Value())
	}
	return nil
}

func runSources(ctx context.Context, client *perplexity.Client, question string) error {
	resp, err := client.Ask(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(resp.Content())

	citations := resp.Citations()
	if len(citations) == 0 {
		fmt.Println("\nNo sources cited.")
		return nil
	}

	for i, url := range citations {
		fmt.Printf("\n--- Source %d: %s ---\n", i+1, url)
		page, err := webfetch.Fetch(ctx, url)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetch failed:", err)
			continue
		}
		fmt.Println(utils.TruncateString(page.Markdown, 2000))
	}
	return nil
}
