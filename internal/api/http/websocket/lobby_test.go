package websocket

import (
	"testing"
	"time"

	"nebula-protocol-be/internal/service"
)

func TestSendLeave_WaitsForFullChannel(t *testing.T) {
	reqCh := make(chan service.Request, 1)
	reqCh <- service.Request{SenderID: "busy"}

	leave := service.Request{Leave: &service.LeaveRequest{PlayerID: "p1"}}

	go func() {
		time.Sleep(20 * time.Millisecond)
		<-reqCh
	}()

	if !sendLeave(reqCh, leave, time.Second) {
		t.Fatalf("leave should be delivered once the channel drains")
	}
	if got := <-reqCh; got.Leave == nil || got.Leave.PlayerID != "p1" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestSendLeave_GivesUpAfterTimeout(t *testing.T) {
	reqCh := make(chan service.Request)

	start := time.Now()
	if sendLeave(reqCh, service.Request{Leave: &service.LeaveRequest{PlayerID: "p1"}}, 30*time.Millisecond) {
		t.Fatalf("nobody is reading, send must fail")
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatalf("returned before the timeout")
	}
}
