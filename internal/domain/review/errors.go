package review

import "errors"

// ErrUnsupportedFormat indicates the declared MIME type is not one the
// extractor handles, or the document library rejected the file.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrPDFNotSupported rejects PDF uploads outright; the user must convert the
// file to .docx or .txt first.
var ErrPDFNotSupported = errors.New("pdf is not supported, convert the file to .docx or .txt")

// ErrReadFailed indicates a local I/O failure while reading the upload.
var ErrReadFailed = errors.New("failed to read document")

// ErrTextTooShort indicates the extracted text is below MinAnalyzableChars.
var ErrTextTooShort = errors.New("extracted text is too short to analyze")

// ErrNoResult indicates the review exists but carries no analysis result,
// so no report or revised document can be exported for it.
var ErrNoResult = errors.New("review has no analysis result")
