package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noDiego/completion-gpt-api/ai"
)

type chatOptions struct {
	configPath   string
	model        string
	system       string
	temperature  float64
	conversation string
	name         string
	debug        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &chatOptions{}

	root := &cobra.Command{
		Use:           "gptchat",
		Short:         "Interactive chat with per-conversation rolling history",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	root.Flags().StringVarP(&opts.model, "model", "m", "", "model identifier (default "+ai.DefaultModel+")")
	root.Flags().StringVarP(&opts.system, "system", "s", "", "system message override")
	root.Flags().Float64VarP(&opts.temperature, "temperature", "t", 0, "sampling temperature override")
	root.Flags().StringVar(&opts.conversation, "conversation", "", "conversation id (generated when empty)")
	root.Flags().StringVarP(&opts.name, "name", "n", "", "sender name attached to your messages")
	root.Flags().BoolVar(&opts.debug, "debug", false, "log raw requests and responses to stderr")

	return root
}

// buildConfig layers CLI flags over the optional YAML config. The API key is
// taken from the file when present, else from OPENAI_API_KEY (.env honored).
func buildConfig(cmd *cobra.Command, opts *chatOptions) (*ai.Config, error) {
	_ = godotenv.Load()

	cfg := &ai.Config{}
	if opts.configPath != "" {
		loaded, err := ai.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if opts.model != "" {
		cfg.CompletionParams.Model = opts.model
	}
	if opts.system != "" {
		cfg.SystemMessage = opts.system
	}
	if cmd.Flags().Changed("temperature") {
		cfg.CompletionParams.Temperature = &opts.temperature
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func runChat(cmd *cobra.Command, opts *chatOptions) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	service, err := ai.NewService(cfg)
	if err != nil {
		return err
	}

	conversationID := opts.conversation
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	yellow.Printf("Conversation %s — type /history, /reset, /new or exit\n", conversationID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cyan.Print("you> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "exit", "quit":
			return nil
		case "/history":
			for _, m := range service.GetHistory(conversationID) {
				fmt.Printf("[%s] %s\n", m.Role, m.Content)
			}
			continue
		case "/reset":
			service.SetHistory(conversationID, nil)
			yellow.Println("History cleared")
			continue
		case "/new":
			conversationID = uuid.NewString()
			yellow.Printf("New conversation %s\n", conversationID)
			continue
		}

		resp, err := service.SendMessage(cmd.Context(), ai.SendRequest{
			ConversationID: conversationID,
			Name:           opts.name,
			Text:           input,
		}, nil)
		if err != nil {
			red.Printf("error: %v\n", err)
			continue
		}

		green.Printf("%s> ", resp.Role)
		fmt.Println(resp.Content)
		if cfg.Debug && resp.Usage != nil {
			yellow.Printf("(%d prompt + %d completion = %d tokens)\n",
				resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
		}
	}
	return scanner.Err()
}
