// Command events_tail connects to a running todo API and prints every task event.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_api/internal/domain"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "API host:port")
	secure := flag.Bool("tls", false, "use wss://")
	flag.Parse()

	scheme := "ws"
	if *secure {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: *addr, Path: "/ws/events"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial %s: %v", u.String(), err)
	}
	defer conn.Close()

	log.Printf("connected to %s", u.String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read error: %v", err)
				return
			}
			printEvent(msg)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ping := time.NewTicker(20 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-ping.C:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
				log.Printf("ping: %v", err)
				return
			}
		case <-quit:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

func printEvent(msg []byte) {
	var ev domain.TaskEvent
	if err := json.Unmarshal(msg, &ev); err != nil || ev.Type == "" {
		fmt.Println(string(msg))
		return
	}

	switch {
	case ev.Task != nil:
		fmt.Printf("%s  %-20s %s %q completion=%d done=%t\n",
			ev.At.Format(time.RFC3339), ev.Type, ev.Task.ID, ev.Task.Title, ev.Task.Completion, ev.Task.Done)
	case ev.Type == domain.EventTasksCleared:
		fmt.Printf("%s  %-20s removed=%d\n", ev.At.Format(time.RFC3339), ev.Type, ev.Removed)
	default:
		// ready / pong
	}
}
