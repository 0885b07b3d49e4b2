package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// A slow handler for one chat must not hold back updates for other chats.
func TestFanOutDoesNotSerializeUpdates(t *testing.T) {
	updates := make(chan tgbotapi.Update, 2)
	release := make(chan struct{})
	second := make(chan struct{})

	handle := func(_ context.Context, update tgbotapi.Update) {
		switch update.UpdateID {
		case 1:
			<-release
		case 2:
			close(second)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fanOut(ctx, updates, handle)
		close(done)
	}()

	updates <- tgbotapi.Update{UpdateID: 1}
	updates <- tgbotapi.Update{UpdateID: 2}

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second update was held back by the first handler")
	}

	close(release)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fanOut did not return after context cancel")
	}
}

func TestFanOutWaitsForHandlers(t *testing.T) {
	updates := make(chan tgbotapi.Update, 1)
	var mu sync.Mutex
	finished := false
	started := make(chan struct{})
	release := make(chan struct{})

	handle := func(context.Context, tgbotapi.Update) {
		close(started)
		<-release
		mu.Lock()
		finished = true
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fanOut(ctx, updates, handle)
		close(done)
	}()

	updates <- tgbotapi.Update{UpdateID: 1}
	<-started
	cancel()

	select {
	case <-done:
		t.Fatal("fanOut returned while a handler was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	mu.Lock()
	defer mu.Unlock()
	if !finished {
		t.Fatal("handler did not complete before fanOut returned")
	}
}
