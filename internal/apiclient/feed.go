package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// Subscribe opens the server-sent change feed. The channel is closed when
// ctx ends or the stream drops; callers reconnect if they need to.
func (c *Client) Subscribe(ctx context.Context, tables ...string) (<-chan realtime.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/realtime", query("tables", strings.Join(tables, ",")), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives the default request timeout.
	stream := &http.Client{Transport: c.http.Transport}
	resp, err := stream.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	out := make(chan realtime.Event, 16)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		err := readEvents(resp.Body, func(name, data string) {
			if name != "change" {
				return
			}
			var ev realtime.Event
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				log.Printf("feed: bad event: %v", err)
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("feed: stream closed: %v", err)
		}
	}()
	return out, nil
}

// readEvents parses a text/event-stream body, calling emit once per event
// with its name and joined data lines.
func readEvents(r io.Reader, emit func(name, data string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	var (
		name string
		data []string
	)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(data) > 0 {
				if name == "" {
					name = "message"
				}
				emit(name, strings.Join(data, "\n"))
			}
			name, data = "", nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
	}
	return sc.Err()
}
