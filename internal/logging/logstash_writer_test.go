package logging

import (
	"bufio"
	"errors"
	"net"
	"testing"
	"time"
)

func TestLogstashWriterForwardsLines(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		received <- line
	}()

	w, err := NewLogstashWriter(ln.Addr().String())
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte(`{"msg":"hello"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case line := <-received:
		if line != "{\"msg\":\"hello\"}\n" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for log line")
	}
}

func TestLogstashWriterDropsDuringCooldown(t *testing.T) {
	dials := 0
	w, err := NewLogstashWriter("logstash:5000", WithRetryInterval(time.Minute))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	w.dial = func(string, string, time.Duration) (net.Conn, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	for i := 0; i < 3; i++ {
		n, err := w.Write([]byte("entry"))
		if err != nil || n != len("entry") {
			t.Fatalf("write should swallow transport errors, got n=%d err=%v", n, err)
		}
	}

	if dials != 1 {
		t.Fatalf("expected a single dial attempt during cooldown, got %d", dials)
	}
	if w.Dropped() != 3 {
		t.Fatalf("expected 3 dropped entries, got %d", w.Dropped())
	}
}

func TestLogstashWriterRejectsEmptyAddress(t *testing.T) {
	if _, err := NewLogstashWriter("  "); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestLogstashWriterClosed(t *testing.T) {
	w, _ := NewLogstashWriter("logstash:5000")
	_ = w.Close()
	if _, err := w.Write([]byte("late")); err == nil {
		t.Fatal("expected error after close")
	}
}
