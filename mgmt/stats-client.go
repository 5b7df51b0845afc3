/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// FetchStatus retrieves one status message from the statistics service at url.
func FetchStatus(ctx context.Context, url string) (*Status, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	status := new(Status)
	if err := conn.ReadJSON(status); err != nil {
		return nil, err
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
	return status, nil
}
