package attendance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/parse"
	"github.com/e-c-centric/ClassHelper/pkg/prompt"
	"github.com/e-c-centric/ClassHelper/pkg/utils/logging"
)

// TranscribeInput carries one uploaded class recording.
type TranscribeInput struct {
	ClassID  model.ClassID
	Audio    []byte
	MIMEType string
}

// TranscribeResult holds the transcription and, when a recording archive
// is configured and the write succeeded, the archive key.
type TranscribeResult struct {
	Transcription string
	RecordingKey  string
}

// Transcribe converts a class recording to text. The raw audio is
// archived first when storage is configured; the archive is best-effort
// and a failed write only logs a warning, since the transcription does
// not depend on the stored copy.
func (u *UseCase) Transcribe(ctx context.Context, input TranscribeInput) (*TranscribeResult, error) {
	if len(input.Audio) == 0 {
		return nil, goerr.New("no audio data provided", goerr.V("class_id", input.ClassID))
	}

	key := u.archiveRecording(ctx, input)

	p := prompt.Transcribe()
	resp, err := u.gemini.Transcribe(ctx, input.Audio, input.MIMEType, p.Text)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transcribe recording", goerr.V("class_id", input.ClassID))
	}

	return &TranscribeResult{
		Transcription: parse.Text(resp),
		RecordingKey:  key,
	}, nil
}

func (u *UseCase) archiveRecording(ctx context.Context, input TranscribeInput) string {
	if u.storage == nil {
		return ""
	}

	key := fmt.Sprintf("recordings/%s/%s", input.ClassID, uuid.New().String())
	w, err := u.storage.Put(ctx, key)
	if err != nil {
		logging.From(ctx).Warn("failed to open recording archive", "key", key, "error", err)
		return ""
	}

	if _, err := w.Write(input.Audio); err != nil {
		logging.From(ctx).Warn("failed to archive recording", "key", key, "error", err)
		_ = w.Close()
		return ""
	}
	if err := w.Close(); err != nil {
		logging.From(ctx).Warn("failed to finalize recording archive", "key", key, "error", err)
		return ""
	}

	return key
}
