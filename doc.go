// Package supp provides a Go client SDK for Supp, an AI-powered customer
// support platform.
//
// The SDK covers message classification, conversation management, routing,
// approvals, billing and workspace administration, plus real-time delivery
// of conversation events over SSE or polling.
//
// Basic usage:
//
//	client, err := supp.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Classify an incoming message
//	result, err := client.Classify(ctx, "I was charged twice, please refund me!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Intent:", result.Intent, "urgency:", result.Urgency)
//
//	// Open a conversation and watch it for events
//	conv, err := client.Conversations().Create(ctx, "Double charge", supp.ChannelEmail,
//	    "jo@example.com", supp.WithPriority(result.SuggestedPriority))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.WatchConversations(ctx, conv.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for event := range events {
//	    fmt.Println(event.Type, "on", event.ConversationID)
//	}
package supp
