package channel

// Event names of the backend wire contract.
const (
	EventJoinRoom              = "join_room"
	EventAudioData             = "audio_data"
	EventPartialResult         = "partial_result"
	EventFinalResult           = "final_result"
	EventTranscribePartial     = "transcribe_partial"
	EventTranscribeFinal       = "transcribe_final"
	EventTranscriptionProgress = "transcription_progress"
	EventChapterTitles         = "chapter_titles"
)

// AudioDataPayload is sent once per captured chunk. Audio is the raw
// encoded bytes of one recording interval.
type AudioDataPayload struct {
	Room  string `json:"room"`
	Audio []byte `json:"audio"`
}

// TranscriptPayload carries partial_result, final_result and
// transcribe_partial events.
type TranscriptPayload struct {
	Text      string `json:"text"`
	SpeakerID string `json:"speakerId,omitempty"`
}

// TranscribeFinalPayload carries file-based final results. Transcript is
// the primary text field; Text is the fallback when it is absent.
type TranscribeFinalPayload struct {
	Transcript string `json:"transcript,omitempty"`
	Text       string `json:"text,omitempty"`
	SpeakerID  string `json:"speakerId,omitempty"`
}

type ProgressPayload struct {
	Progress float64 `json:"progress"`
}

type ChapterTitlesPayload struct {
	Titles string `json:"titles"`
}

type JoinRoomPayload struct {
	Room string `json:"room"`
}
