package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	supp "github.com/suppsupport/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: supptool <command> [args]\n\ncommands:\n" +
			"  classify <text>          classify a message\n" +
			"  conversations            list open conversations\n" +
			"  show <conversation-id>   print a conversation with its messages\n" +
			"  watch <conversation-id>  stream events for a conversation\n" +
			"  approvals                list pending approvals\n" +
			"  balance                  print the credit balance")
	}

	// .env is optional; environment variables win.
	_ = godotenv.Load()

	apiKey := os.Getenv("SUPP_API_KEY")
	if apiKey == "" {
		fatal("SUPP_API_KEY environment variable is required")
	}

	opts := []supp.Option{}
	if baseURL := os.Getenv("SUPP_BASE_URL"); baseURL != "" {
		opts = append(opts, supp.WithBaseURL(baseURL))
	}

	client, err := supp.New(apiKey, opts...)
	if err != nil {
		fatal("create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "classify":
		if len(os.Args) < 3 {
			fatal("usage: supptool classify <text>")
		}
		classify(ctx, client, os.Args[2])
	case "conversations":
		listConversations(ctx, client)
	case "show":
		if len(os.Args) < 3 {
			fatal("usage: supptool show <conversation-id>")
		}
		showConversation(ctx, client, os.Args[2])
	case "watch":
		if len(os.Args) < 3 {
			fatal("usage: supptool watch <conversation-id>")
		}
		watchConversation(client, os.Args[2])
	case "approvals":
		listApprovals(ctx, client)
	case "balance":
		printBalance(ctx, client)
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func classify(ctx context.Context, client *supp.Client, text string) {
	result, err := client.Classify(ctx, text)
	if err != nil {
		fatal("classify: %v", err)
	}
	printJSON(result)
}

func listConversations(ctx context.Context, client *supp.Client) {
	page, err := client.Conversations().List(ctx, supp.ConversationFilter{
		Status: supp.StatusOpen,
		Limit:  50,
	})
	if err != nil {
		fatal("list conversations: %v", err)
	}

	for _, conv := range page.Items {
		fmt.Printf("%s  [%s/%s]  %s\n", conv.ID, conv.Status, conv.Priority, conv.Subject)
	}
	if page.NextCursor != "" {
		fmt.Printf("... more (cursor %s)\n", page.NextCursor)
	}
}

func showConversation(ctx context.Context, client *supp.Client, id string) {
	conv, err := client.Conversations().Get(ctx, id)
	if err != nil {
		fatal("get conversation: %v", err)
	}

	fmt.Printf("%s  [%s/%s]  %s\n", conv.ID, conv.Status, conv.Priority, conv.Subject)
	fmt.Printf("customer: %s  channel: %s\n\n", conv.CustomerEmail, conv.Channel)

	messages, err := client.Conversations().Messages(ctx, id)
	if err != nil {
		fatal("list messages: %v", err)
	}

	for _, msg := range messages {
		fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format(time.RFC3339), msg.Role, msg.Body)
	}
}

func watchConversation(client *supp.Client, id string) {
	// No deadline; stream until interrupted.
	ctx := context.Background()

	fmt.Printf("watching %s (ctrl-c to stop)\n", id)
	err := client.WatchConversationsFunc(ctx, func(event *supp.ConversationEvent) {
		if event.Message != nil {
			fmt.Printf("[%s] %s: %s\n", event.OccurredAt.Format(time.RFC3339),
				event.Message.Role, event.Message.Body)
			return
		}
		fmt.Printf("[%s] %s\n", event.OccurredAt.Format(time.RFC3339), event.Type)
	}, id)
	if err != nil {
		fatal("watch: %v", err)
	}
}

func listApprovals(ctx context.Context, client *supp.Client) {
	approvals, err := client.Approvals().List(ctx, supp.ApprovalPending)
	if err != nil {
		fatal("list approvals: %v", err)
	}

	for _, approval := range approvals {
		fmt.Printf("%s  %s  conversation %s  requested by %s\n",
			approval.ID, approval.Action, approval.ConversationID, approval.RequestedBy)
	}
}

func printBalance(ctx context.Context, client *supp.Client) {
	balance, err := client.Billing().Balance(ctx)
	if err != nil {
		fatal("get balance: %v", err)
	}
	printJSON(balance)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
