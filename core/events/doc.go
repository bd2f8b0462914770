// Package events defines the typed orchestration event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - mood.*
//   - assistant_speech.*
//   - turn_state.*
//
// user_input events
//
//   - RecordingStarted (user_input.recording_started): microphone capture
//     began for an utterance.
//   - RecordingStopped (user_input.recording_stopped): capture ended; carries
//     the total captured byte count.
//   - TranscriptFinal (user_input.transcript_final): terminal transcript for
//     the captured utterance.
//
// assistant_response events
//
//   - ResponseSegment (assistant_response.segment): revealed response text
//     fragment, emitted in reveal order.
//   - ResponseFinal (assistant_response.final): full response text once the
//     reveal completed.
//
// mood events
//
//   - MoodChanged (mood.changed): companion mood transition; carries previous
//     and current mood.
//
// assistant_speech events
//
//   - SpeechRequested (assistant_speech.requested): synthesis was requested
//     for the response text.
//   - SpeechReady (assistant_speech.ready): the synthesized asset arrived and
//     is queued for playback.
//   - PlaybackStarted (assistant_speech.playback_started): local playback of
//     the asset began.
//   - PlaybackEnded (assistant_speech.playback_ended): playback finished or
//     was stopped.
//   - SpeechFailed (assistant_speech.failed): synthesis or playback failed;
//     the turn still completes with text only.
//
// turn_state events
//
//   - TurnStarted (turn_state.started): a new turn began for a user prompt.
//   - TurnStateChanged (turn_state.changed): the turn moved between
//     lifecycle states.
//   - TurnCompleted (turn_state.completed): the turn completed successfully.
//   - TurnFailed (turn_state.failed): the turn failed; a fallback response
//     was recorded.
//   - TurnCancelled (turn_state.cancelled): the turn was cancelled before
//     completion.
package events
