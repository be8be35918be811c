package services

import (
	"context"
	"errors"
	"fmt"

	"coralbay/models"
	"coralbay/store"

	"github.com/sirupsen/logrus"
)

var defaultRooms = []models.Room{
	{RoomType: "Single", RoomNumber: "101"},
	{RoomType: "Single", RoomNumber: "102"},
	{RoomType: "Family", RoomNumber: "201"},
	{RoomType: "Family", RoomNumber: "202"},
	{RoomType: "Double", RoomNumber: "301"},
	{RoomType: "Double", RoomNumber: "302"},
	{RoomType: "Double", RoomNumber: "303"},
	{RoomType: "Double", RoomNumber: "304"},
	{RoomType: "Double", RoomNumber: "305"},
	{RoomType: "Double", RoomNumber: "306"},
}

// SeedDefaults tạo admin khi chưa có và mười phòng mặc định khi bảng phòng trống.
func SeedDefaults(ctx context.Context, s *store.Store, adminUser, adminPassword string, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	_, err := s.FindAdmin(ctx, adminUser)
	switch {
	case errors.Is(err, models.ErrNotFound):
		hash, err := HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if err := s.CreateAdmin(ctx, &models.Admin{Username: adminUser, PasswordHash: hash}); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.WithField("username", adminUser).Info("seeded admin account")
	case err != nil:
		return err
	}

	n, err := s.CountRooms(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rooms := make([]models.Room, len(defaultRooms))
	for i, r := range defaultRooms {
		r.Availability = true
		rooms[i] = r
	}
	if err := s.CreateRooms(ctx, rooms); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	log.WithField("rooms", len(rooms)).Info("seeded default rooms")
	return nil
}
