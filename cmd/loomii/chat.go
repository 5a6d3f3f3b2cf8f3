package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loomii/internal/cards"
	"loomii/internal/stream"
)

var (
	chatServer         string
	chatConversationID string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with a running loomii server",
	Long: `Sends a message to a running server and prints the streamed answer.
Card metadata at the end of the stream is summarized after the text.

With no message argument, starts an interactive session.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatServer, "server", "http://localhost:3001", "Server base URL")
	chatCmd.Flags().StringVar(&chatConversationID, "conversation", "", "Conversation ID (server assigns one if empty)")
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return sendMessage(strings.Join(args, " "))
	}

	fmt.Println("loomii chat (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := sendMessage(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func sendMessage(message string) error {
	body, err := json.Marshal(map[string]string{
		"message":        message,
		"conversationId": chatConversationID,
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(chatServer+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	// Reuse the assigned conversation for the rest of the session.
	if id := resp.Header.Get("X-Conversation-ID"); id != "" {
		chatConversationID = id
	}

	e := stream.NewExtractor()
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			fmt.Print(e.Feed(string(buf[:n])))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("stream interrupted: %w", err)
		}
	}
	fmt.Print(e.Rest())
	fmt.Println()

	if raw, ok := e.Metadata(); ok {
		meta, err := cards.ParseMetadata(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad card metadata: %v\n", err)
			return nil
		}
		printCards(meta)
	}
	return nil
}

func printCards(meta cards.Metadata) {
	for _, card := range meta.Cards {
		fmt.Printf("\n[%s] %s\n", card.Type, card.Title)
		for _, item := range card.Items {
			fmt.Printf("  - %s", item.Title)
			if item.Value > 0 {
				fmt.Printf(" (value=%d effort=%d)", item.Value, item.Effort)
			}
			fmt.Println()
		}
		for _, s := range card.Suggestions {
			fmt.Printf("  ? %s\n", s)
		}
	}
}
