// Package http provides HTTP handlers and middleware for the event planner API.
//
// The router exposes the following endpoints:
//   - GET /timing/end-time?start=HH:MM&hours=&minutes=: previews the end time of a
//     duration based event. Response: {"end_time":{"raw_time","is_next_day","display_text"}}.
//   - POST /events/validate: checks an event timing without storing it. Responds 200
//     with {"timing"} or 422 with {"error_code","message","errors"}.
//   - GET /events, POST /events, GET /events/{id}, PUT /events/{id}: event records
//     exchanging the `eventDTO` payload defined in event_handler.go.
//   - GET /events/{id}/calendar.ics: the event and its sessions as text/calendar.
//   - GET /sessions?event_id=&room_id=, POST /sessions, PUT /sessions/{id},
//     DELETE /sessions/{id}: agenda sessions exchanging the `sessionDTO` payload
//     defined in session_handler.go. Writes and listings carry advisory room
//     conflict warnings; with strict booking enabled a double booking answers 409.
//   - GET /sessions/grid?event_id=: sessions grouped into parallel-track time slots.
//   - GET /session-types: the metadata fields collected per session type.
//   - GET /buildings?event_id=, POST /buildings, GET /rooms?event_id=, POST /rooms,
//     DELETE /rooms/{id}: venue catalog endpoints defined in venue_handler.go.
//
// Every response carries an X-Request-ID header when RequestLogger is installed.
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
