package services

import "coralbay/models"

type noRoomsError struct{}

func (noRoomsError) Error() string { return "No available rooms for the selected type." }

func (noRoomsError) Unwrap() error { return models.ErrNotFound }

// ErrNoRoomsOfType thuộc nhóm NotFound để controller trả 404.
var ErrNoRoomsOfType error = noRoomsError{}
