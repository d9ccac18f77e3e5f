// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginResponse is returned by the register and login endpoints alongside
// the Authorization header.
type LoginResponse struct {
	SubjectID string `json:"subject_id"`
	KeySalt   string `json:"key_salt,omitempty"`
}

// RecordListResponse wraps a page of stored records.
type RecordListResponse struct {
	Records []StoredRecord `json:"records"`
	Length  int            `json:"length"`
}
