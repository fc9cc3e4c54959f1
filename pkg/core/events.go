package core

// Backend event names.
const (
	EventAttachSucceeded     = "attach-succeeded"
	EventAttachFailed        = "attach-failed"
	EventExportSucceeded     = "export-succeeded"
	EventExportFailed        = "export-failed"
	EventUploadSucceeded     = "upload-succeeded"
	EventUploadFailed        = "upload-failed"
	EventNewWindowSucceeded  = "new-window-succeeded"
	EventNewWindowFailed     = "new-window-failed"
	EventOpenFolderSucceeded = "open-folder-succeeded"
	EventOpenFolderFailed    = "open-folder-failed"
)

// EventPayload is the body the backend attaches to an event. The message
// is read from "msg", falling back to "message" and then "error".
type EventPayload struct {
	Message string `json:"msg"`
}
