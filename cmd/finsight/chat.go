package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/finsight/internal/app"
)

// runChat answers a single message when one is given on the command
// line, or starts an interactive session on stdin otherwise. The
// -history flag prints the user's recent turns instead.
func runChat(application *app.App, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	username := fs.String("user", "", "Username whose profile personalizes replies")
	history := fs.Int("history", 0, "Print the user's N most recent turns and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()

	if *history > 0 {
		if *username == "" {
			return fmt.Errorf("-history requires -user")
		}
		turns, err := application.ChatLogStorage.ListByUser(ctx, *username, *history)
		if err != nil {
			return err
		}
		if len(turns) == 0 {
			fmt.Printf("No chat history for %q.\n", *username)
			return nil
		}
		for i := len(turns) - 1; i >= 0; i-- {
			turn := turns[i]
			fmt.Printf("[%s] %s: %s\n  finsight: %s\n",
				turn.CreatedAt.Format("2006-01-02 15:04"), turn.Username, turn.Message, turn.Reply)
		}
		return nil
	}

	if *username != "" {
		user, err := application.UserStorage.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Printf("No user %q on record; replies will not be personalized. Use 'finsight register' to create one.\n", *username)
		}
	}

	// One-shot message given on the command line.
	if fs.NArg() > 0 {
		reply, err := application.ChatService.Respond(ctx, *username, strings.Join(fs.Args(), " "))
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	fmt.Println("Finsight advisory chat. Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		reply, err := application.ChatService.Respond(ctx, *username, message)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("%s\n\n", reply)
	}

	return scanner.Err()
}
