//go:build js && wasm

package motion

import (
	"context"
	"errors"
	"io"
	"sync"
	"syscall/js"
)

// browserWire wraps the page's WebSocket object; net.Dial is not available
// under wasm. Listener funcs stay registered for the life of the page.
type browserWire struct {
	ws       js.Value
	incoming chan []byte
	closed   chan struct{}
	once     sync.Once
	funcs    []js.Func
}

func dialWire(ctx context.Context, url string) (wire, error) {
	w := &browserWire{
		ws:       js.Global().Get("WebSocket").New(url),
		incoming: make(chan []byte, sendBuffer),
		closed:   make(chan struct{}),
	}
	opened := make(chan struct{})

	w.on("open", func(js.Value) { close(opened) })
	w.on("message", func(ev js.Value) {
		data := ev.Get("data")
		if data.Type() != js.TypeString {
			return
		}
		select {
		case w.incoming <- []byte(data.String()):
		default:
		}
	})
	w.on("close", func(js.Value) { w.shut() })
	w.on("error", func(js.Value) { w.shut() })

	select {
	case <-opened:
		return w, nil
	case <-w.closed:
		return nil, errors.New("websocket closed before open")
	case <-ctx.Done():
		w.Close()
		return nil, ctx.Err()
	}
}

func (w *browserWire) on(event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		} else {
			fn(js.Undefined())
		}
		return nil
	})
	w.funcs = append(w.funcs, f)
	w.ws.Call("addEventListener", event, f)
}

func (w *browserWire) shut() {
	w.once.Do(func() { close(w.closed) })
}

func (w *browserWire) ReadMessage() ([]byte, error) {
	select {
	case msg := <-w.incoming:
		return msg, nil
	case <-w.closed:
		return nil, io.EOF
	}
}

func (w *browserWire) WriteMessage(msg []byte) error {
	select {
	case <-w.closed:
		return io.ErrClosedPipe
	default:
	}
	w.ws.Call("send", string(msg))
	return nil
}

func (w *browserWire) Close() error {
	w.ws.Call("close")
	w.shut()
	return nil
}
