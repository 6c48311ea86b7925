package types

// Common response types

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Record is one database row keyed by column name.
type Record = map[string]any

// RecordCount is the synthetic header element prepended to every record set.
type RecordCount struct {
	NumberOfRecords int `json:"numberOfRecords"`
}

// FrameRecords wraps rows in the API's list framing: the first element
// reports the row count, followed by the rows themselves. An empty result
// yields just the zero-count header.
func FrameRecords(rows []Record) []any {
	out := make([]any, 0, len(rows)+1)
	out = append(out, RecordCount{NumberOfRecords: len(rows)})
	for _, row := range rows {
		out = append(out, row)
	}
	return out
}

// Ping types

type PingAPIResponse struct {
	FERequestTime string `json:"FE request time"`
	MWRequestTime string `json:"MW request time"`
}

// Auth types

type TokenExchangeRequest struct {
	Code         string `json:"code" binding:"required"`
	CodeVerifier string `json:"codeVerifier" binding:"required"`
}

type TokenExchangeResponse struct {
	AccessToken string `json:"accessToken"`
}

// Person update request, column names preserved from the persons table.

type UpdatePersonRequest struct {
	PersonID           int64   `json:"personId" binding:"required"`
	PersonGivvenName   string  `json:"PersonGivvenName"`
	PersonFamilyName   string  `json:"PersonFamilyName"`
	PersonDateOfBirth  *string `json:"PersonDateOfBirth"`
	PersonPlaceOfBirth *string `json:"PersonPlaceOfBirth"`
	PersonDateOfDeath  *string `json:"PersonDateOfDeath"`
	PersonPlaceOfDeath *string `json:"PersonPlaceOfDeath"`
}
