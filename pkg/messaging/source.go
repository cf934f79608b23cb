// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package messaging

import (
	"github.com/xapiens/RVPF-sub009/pkg/batch"
)

// NoticeSource adapts a Receiver into the batch engine's batch.Source,
// translating the wire-level NULL sentinel into a null notice and
// everything else into a value notice.
type NoticeSource struct {
	receiver *Receiver
}

// NewNoticeSource wraps receiver for use as an Engine's Config.Source.
func NewNoticeSource(receiver *Receiver) *NoticeSource {
	return &NoticeSource{receiver: receiver}
}

func (s *NoticeSource) Receive(timeoutMs int) (batch.Notice, bool) {
	pv, ok := s.receiver.Receive(timeoutMs)
	if !ok {
		return batch.Notice{}, false
	}
	if pv.IsNull() {
		return batch.NullNotice(), true
	}
	return batch.Notice{Kind: batch.NoticeValue, Value: pv}, true
}
