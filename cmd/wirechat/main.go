/*******************************************************************************
DESCRIPTION

  Simple chat app built directly on the client/server messaging runtime.

INSTALLATION

  1. Run the following:
     go clean
     go mod tidy
     go install

  2. Ensure $GOPATH/bin is in your PATH.

USAGE

  wirechat server <port>
  wirechat client <name> <host> <port>

  Running as server hosts a chat room on 0.0.0.0:<port> and broadcasts every
  TextMessage it receives to every other connected client.

  Running as client connects to host:port, reads lines from stdin, and sends
  each as a TextMessage prefixed with <name>. Enter CTRL+C to quit.

*******************************************************************************/

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"wireline/pkg/client"
	"wireline/pkg/message"
	"wireline/pkg/reconnector"
	"wireline/pkg/server"
)

func checkErr(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	if len(os.Args) < 2 {
		panic("USAGE: wirechat server <port> | wirechat client <name> <host> <port>")
	}

	switch os.Args[1] {
	case "server":
		runServer(os.Args[2:])
	case "client":
		runClient(os.Args[2:])
	default:
		panic("USAGE: wirechat server <port> | wirechat client <name> <host> <port>")
	}
}

func runServer(args []string) {
	if len(args) != 1 {
		panic("USAGE: wirechat server <port>")
	}
	port, err := strconv.ParseUint(args[0], 10, 16)
	checkErr(err)

	cfg := server.NewConfig("0.0.0.0", uint16(port))
	s := server.New(cfg)

	s.OnClientConnected(func(sc *server.Client) {
		fmt.Printf("client %d connected from %s\n", sc.ID(), sc.RemoteAddr())
		sc.OnMessageReceived(func(m message.Message) {
			tm, ok := m.(message.TextMessage)
			if !ok || tm.Text == nil {
				return
			}
			for _, other := range s.Clients() {
				if other.ID() == sc.ID() {
					continue
				}
				_ = other.SendMessage(m)
			}
		})
	})
	s.OnClientDisconnected(func(sc *server.Client) {
		fmt.Printf("client %d disconnected\n", sc.ID())
	})

	go func() {
		for err := range s.Errors() {
			fmt.Println("server error:", err)
		}
	}()

	checkErr(s.Start())
	defer s.Stop()

	fmt.Printf("chat server listening on :%d, enter CTRL+C to quit...\n", port)
	waitForInterrupt()
}

func runClient(args []string) {
	if len(args) != 3 {
		panic("USAGE: wirechat client <name> <host> <port>")
	}
	name := args[0]
	host := args[1]
	port, err := strconv.ParseUint(args[2], 10, 16)
	checkErr(err)

	cfg := client.NewConfig(host, uint16(port))
	c := client.New(cfg)

	c.OnMessageReceived(func(m message.Message) {
		if tm, ok := m.(message.TextMessage); ok && tm.Text != nil {
			fmt.Printf("\r%s\n> ", *tm.Text)
		}
	})
	c.OnDisconnected(func(err error) {
		fmt.Println("\ndisconnected, reconnecting...")
	})

	checkErr(c.Connect())
	defer c.Disconnect()

	rc := reconnector.New(c)
	rc.Start()
	defer rc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		signal.Stop(intChan)
		cancel()
	}()

	fmt.Println("Connected, enter CTRL+C to quit...")
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		if !c.IsConnected() {
			fmt.Println("not connected, message dropped")
			continue
		}

		text := fmt.Sprintf("%s: %s", name, trimNewline(input))
		if sendErr := c.SendMessage(message.NewTextMessage(text)); sendErr != nil {
			fmt.Println("failed to send message:", sendErr)
		}
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func waitForInterrupt() {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	<-intChan
	fmt.Println("Interrupt received, shutting down...")
}
