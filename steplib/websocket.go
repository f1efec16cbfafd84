package steplib

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

const wsReadTimeout = 5 * time.Second

// WebSocketSteps returns send/receive steps bound to the named resource.
func WebSocketSteps(name string) *basil.Registry[World] {
	r := basil.NewRegistry[World]()

	r.WhenPattern(fmt.Sprintf(`^I send message to "%s":$`, name),
		func(w *World, _ []string, step *feature.Step) error {
			conn, err := w.ws(name)
			if err != nil {
				return err
			}
			return conn.WriteMessage(websocket.TextMessage, []byte(step.DocString))
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" should receive message:$`, name),
		func(w *World, _ []string, step *feature.Step) error {
			conn, err := w.ws(name)
			if err != nil {
				return err
			}
			if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
				return err
			}
			_, data, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("reading websocket message: %w", err)
			}
			want := strings.TrimSpace(step.DocString)
			got := strings.TrimSpace(string(data))
			if got != want {
				return fmt.Errorf("received message %q, expected %q", got, want)
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" should receive message matching JSON:$`, name),
		func(w *World, _ []string, step *feature.Step) error {
			conn, err := w.ws(name)
			if err != nil {
				return err
			}
			if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
				return err
			}
			_, data, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("reading websocket message: %w", err)
			}
			return matchJSON(data, []byte(step.DocString))
		})

	return r
}
