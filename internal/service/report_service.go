package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

const reportTimeLayout = "2006-01-02 15:04:05"

// ReportService renders the admin CSV exports. Rows are streamed out of
// the repositories and written with encoding/csv into an in-memory buffer;
// the exports are admin-only and small enough for that.
type ReportService struct {
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
	swapRepo   repository.SwapRepository
	ratingRepo repository.RatingRepository
}

// NewReportService returns a new ReportService.
func NewReportService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, swapRepo repository.SwapRepository, ratingRepo repository.RatingRepository) *ReportService {
	return &ReportService{
		userRepo:   userRepo,
		skillRepo:  skillRepo,
		swapRepo:   swapRepo,
		ratingRepo: ratingRepo,
	}
}

// UserActivityCSV exports per-user activity figures.
func (s *ReportService) UserActivityCSV(ctx context.Context) ([]byte, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"User ID", "Name", "Email", "Location", "Registration Date", "Last Login",
		"Skills Count", "Swap Requests Sent", "Swap Requests Received", "Completed Swaps", "Average Rating"}
	if err := w.Write(header); err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, u := range users {
		skills, err := s.skillRepo.CountByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		sent, err := s.swapRepo.CountSentByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		received, err := s.swapRepo.CountReceivedByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		completed, err := s.swapRepo.CountCompletedByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summary, err := s.ratingRepo.SummaryForUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		row := []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			u.Email,
			u.Location,
			u.CreatedAt.Format(reportTimeLayout),
			formatNullableTime(u.LastLogin),
			strconv.FormatInt(skills, 10),
			strconv.FormatInt(sent, 10),
			strconv.FormatInt(received, 10),
			strconv.FormatInt(completed, 10),
			formatAverage(summary.Average, summary.Count),
		}
		if err := w.Write(row); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// FeedbackLogsCSV exports every rating with rater and ratee names.
func (s *ReportService) FeedbackLogsCSV(ctx context.Context) ([]byte, error) {
	ratings, err := s.ratingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Rating ID", "Rater Name", "Rated User", "Rating", "Feedback", "Swap Request ID", "Date"}
	if err := w.Write(header); err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, r := range ratings {
		row := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userName(r.Rater),
			userName(r.Rated),
			strconv.Itoa(r.Rating),
			r.Feedback,
			strconv.FormatUint(uint64(r.SwapRequestID), 10),
			r.CreatedAt.Format(reportTimeLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// SwapStatsCSV exports every swap request with both sides' ratings.
func (s *ReportService) SwapStatsCSV(ctx context.Context) ([]byte, error) {
	swaps, err := s.swapRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Swap Request ID", "Requester Name", "Provider Name", "Offered Skill", "Wanted Skill",
		"Status", "Created Date", "Completed Date", "Rating Given", "Rating Received"}
	if err := w.Write(header); err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, sw := range swaps {
		ratings, err := s.ratingRepo.ListBySwap(ctx, sw.ID)
		if err != nil {
			return nil, err
		}

		// "Given" is the requester's rating of the provider, "Received"
		// the provider's rating of the requester.
		var given, received string
		for _, r := range ratings {
			if r.RaterID == sw.RequesterID {
				given = strconv.Itoa(r.Rating)
			}
			if r.RaterID == sw.ProviderID {
				received = strconv.Itoa(r.Rating)
			}
		}

		completedDate := ""
		if sw.Status == models.SwapStatusCompleted {
			completedDate = sw.UpdatedAt.Format(reportTimeLayout)
		}

		row := []string{
			strconv.FormatUint(uint64(sw.ID), 10),
			userName(sw.Requester),
			userName(sw.Provider),
			skillName(sw.OfferedSkill),
			skillName(sw.WantedSkill),
			string(sw.Status),
			sw.CreatedAt.Format(reportTimeLayout),
			completedDate,
			given,
			received,
		}
		if err := w.Write(row); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// UsersCSV exports the full user table including moderation flags.
func (s *ReportService) UsersCSV(ctx context.Context) ([]byte, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"User ID", "Name", "Email", "Location", "Bio", "Registration Date", "Last Login",
		"Is Admin", "Is Banned", "Is Under Supervision", "Profile Photo"}
	if err := w.Write(header); err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, u := range users {
		row := []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			u.Email,
			u.Location,
			u.Bio,
			u.CreatedAt.Format(reportTimeLayout),
			formatNullableTime(u.LastLogin),
			strconv.FormatBool(u.IsAdmin),
			strconv.FormatBool(u.IsBanned),
			strconv.FormatBool(u.IsUnderSupervision),
			u.ProfilePhoto,
		}
		if err := w.Write(row); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func formatNullableTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(reportTimeLayout)
}

func formatAverage(avg float64, count int64) string {
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", avg)
}

func userName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func skillName(s *models.Skill) string {
	if s == nil {
		return ""
	}
	return s.Name
}
