package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type userRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getByEmailFn  func(context.Context, string) (*models.User, error)
	createFn      func(context.Context, *models.User) error
	updateFn      func(context.Context, *models.User) error
	deleteFn      func(context.Context, uint) error
	listPublicFn  func(context.Context, string, int, int) ([]models.User, int64, error)
	listMembersFn func(context.Context, int, int) ([]models.User, int64, error)
	listAllFn     func(context.Context) ([]models.User, error)
	recentFn      func(context.Context, int) ([]models.User, error)
	countFn       func(context.Context) (int64, error)
	countBannedFn func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) ListPublic(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.listPublicFn(ctx, search, limit, offset)
}
func (s *userRepoStub) ListMembers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.listMembersFn(ctx, limit, offset)
}
func (s *userRepoStub) ListAll(ctx context.Context) ([]models.User, error) {
	return s.listAllFn(ctx)
}
func (s *userRepoStub) Recent(ctx context.Context, limit int) ([]models.User, error) {
	return s.recentFn(ctx, limit)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) CountBanned(ctx context.Context) (int64, error) {
	return s.countBannedFn(ctx)
}

type skillRepoStub struct {
	createFn       func(context.Context, *models.Skill) error
	getByIDFn      func(context.Context, uint) (*models.Skill, error)
	updateFn       func(context.Context, *models.Skill) error
	deleteFn       func(context.Context, uint) error
	listByUserFn   func(context.Context, uint) ([]models.Skill, error)
	listPendingFn  func(context.Context, int, int) ([]models.Skill, int64, error)
	listApprovedFn func(context.Context, models.SkillType, string, int, int) ([]models.Skill, int64, error)
	listEveryFn    func(context.Context, int, int) ([]models.Skill, int64, error)
	countByUserFn  func(context.Context, uint) (int64, error)
	countPendingFn func(context.Context) (int64, error)
}

func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *skillRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *skillRepoStub) ListPending(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *skillRepoStub) ListApproved(ctx context.Context, skillType models.SkillType, search string, limit, offset int) ([]models.Skill, int64, error) {
	return s.listApprovedFn(ctx, skillType, search, limit, offset)
}
func (s *skillRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.Skill, int64, error) {
	return s.listEveryFn(ctx, limit, offset)
}
func (s *skillRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *skillRepoStub) CountPending(ctx context.Context) (int64, error) {
	return s.countPendingFn(ctx)
}

type swapRepoStub struct {
	createFn               func(context.Context, *models.SwapRequest) error
	getByIDFn              func(context.Context, uint) (*models.SwapRequest, error)
	updateStatusFn         func(context.Context, uint, models.SwapStatus) error
	listByUserFn           func(context.Context, uint, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error)
	listAllFn              func(context.Context) ([]models.SwapRequest, error)
	recentFn               func(context.Context, int) ([]models.SwapRequest, error)
	hasPendingDuplicateFn  func(context.Context, uint, uint) (bool, error)
	countByStatusFn        func(context.Context, models.SwapStatus) (int64, error)
	countSentByUserFn      func(context.Context, uint) (int64, error)
	countReceivedByUserFn  func(context.Context, uint) (int64, error)
	countCompletedByUserFn func(context.Context, uint) (int64, error)
}

func (s *swapRepoStub) Create(ctx context.Context, req *models.SwapRequest) error {
	return s.createFn(ctx, req)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) UpdateStatus(ctx context.Context, id uint, status models.SwapStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *swapRepoStub) ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	return s.listByUserFn(ctx, userID, status, limit, offset)
}
func (s *swapRepoStub) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	return s.listAllFn(ctx)
}
func (s *swapRepoStub) Recent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	return s.recentFn(ctx, limit)
}
func (s *swapRepoStub) HasPendingDuplicate(ctx context.Context, requesterID, wantedSkillID uint) (bool, error) {
	return s.hasPendingDuplicateFn(ctx, requesterID, wantedSkillID)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}
func (s *swapRepoStub) CountSentByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countSentByUserFn(ctx, userID)
}
func (s *swapRepoStub) CountReceivedByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countReceivedByUserFn(ctx, userID)
}
func (s *swapRepoStub) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countCompletedByUserFn(ctx, userID)
}

type ratingRepoStub struct {
	createFn           func(context.Context, *models.Rating) error
	getBySwapAndRater  func(context.Context, uint, uint) (*models.Rating, error)
	listBySwapFn       func(context.Context, uint) ([]models.Rating, error)
	listForUserFn      func(context.Context, uint, int, int) ([]models.Rating, int64, error)
	listAllFn          func(context.Context) ([]models.Rating, error)
	summaryForUserFn   func(context.Context, uint) (*repository.RatingSummary, error)
}

func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	return s.getBySwapAndRater(ctx, swapID, raterID)
}
func (s *ratingRepoStub) ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error) {
	return s.listBySwapFn(ctx, swapID)
}
func (s *ratingRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *ratingRepoStub) ListAll(ctx context.Context) ([]models.Rating, error) {
	return s.listAllFn(ctx)
}
func (s *ratingRepoStub) SummaryForUser(ctx context.Context, userID uint) (*repository.RatingSummary, error) {
	return s.summaryForUserFn(ctx, userID)
}

type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listByUserFn  func(context.Context, uint, bool, int, int) ([]models.Notification, int64, error)
	countUnreadFn func(context.Context, uint) (int64, error)
	markReadFn    func(context.Context, uint, uint) error
	markAllReadFn func(context.Context, uint) error
	deleteFn      func(context.Context, uint, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, int64, error) {
	return s.listByUserFn(ctx, userID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id, userID uint) error {
	return s.markReadFn(ctx, id, userID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllReadFn(ctx, userID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}

type chatRepoStub struct {
	getOrCreateConversationFn func(context.Context, uint, uint) (*models.Conversation, error)
	getConversationFn         func(context.Context, uint) (*models.Conversation, error)
	listConversationsFn       func(context.Context, uint) ([]repository.ConversationSummary, error)
	createMessageFn           func(context.Context, *models.ChatMessage) error
	listMessagesFn            func(context.Context, uint, int, int) ([]models.ChatMessage, error)
	markConversationReadFn    func(context.Context, uint, uint) error
	totalUnreadFn             func(context.Context, uint) (int64, error)
}

func (s *chatRepoStub) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	return s.getOrCreateConversationFn(ctx, userA, userB)
}
func (s *chatRepoStub) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getConversationFn(ctx, id)
}
func (s *chatRepoStub) ListConversations(ctx context.Context, userID uint) ([]repository.ConversationSummary, error) {
	return s.listConversationsFn(ctx, userID)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]models.ChatMessage, error) {
	return s.listMessagesFn(ctx, conversationID, limit, offset)
}
func (s *chatRepoStub) MarkConversationRead(ctx context.Context, conversationID, readerID uint) error {
	return s.markConversationReadFn(ctx, conversationID, readerID)
}
func (s *chatRepoStub) TotalUnread(ctx context.Context, userID uint) (int64, error) {
	return s.totalUnreadFn(ctx, userID)
}
