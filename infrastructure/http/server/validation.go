package server

import (
	"encoding/base64"
	"fmt"
	"strings"

	"chat-core/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// parsePayloadKind defaults an absent kind to text and rejects anything
// the core does not know.
func parsePayloadKind(kind string) (domain.PayloadKind, error) {
	switch domain.PayloadKind(kind) {
	case "", domain.PayloadText:
		return domain.PayloadText, nil
	case domain.PayloadAudio:
		return domain.PayloadAudio, nil
	default:
		return "", fmt.Errorf("unknown payload kind %q", kind)
	}
}

func parseSignalType(signalType string) (domain.SignalType, error) {
	switch domain.SignalType(signalType) {
	case domain.SignalOffer, domain.SignalAnswer, domain.SignalIceCandidate:
		return domain.SignalType(signalType), nil
	default:
		return "", fmt.Errorf("unknown signal type %q", signalType)
	}
}

// checkAudioContent decodes the base64 blob and sniffs it. The core relays
// content verbatim, so this is the only place a bogus "audio" payload can
// be caught.
func checkAudioContent(content string, durationSeconds int) error {
	if durationSeconds <= 0 {
		return fmt.Errorf("audio messages need a positive duration")
	}
	blob, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return fmt.Errorf("audio content is not valid base64: %w", err)
	}
	// MediaRecorder blobs sniff as video/webm even when they carry audio only.
	detected := mimetype.Detect(blob)
	if !strings.HasPrefix(detected.String(), "audio/") && !strings.HasPrefix(detected.String(), "video/webm") {
		return fmt.Errorf("audio content has mime type %s", detected.String())
	}
	return nil
}
