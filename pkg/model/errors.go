package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrClassNotFound     = goerr.New("class not found")
	ErrRosterNotFound    = goerr.New("no students found for class")
	ErrNoEventRows       = goerr.New("no event rows in requested scope")
	ErrInvalidDate       = goerr.New("invalid date")
	ErrInvalidRelevance  = goerr.New("invalid relevance")
	ErrInvalidReportType = goerr.New("invalid report type")
)
