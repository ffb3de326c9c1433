package handler

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/auth"
	"github.com/fekuna/kiwi-storefront-service/internal/user"
	"github.com/fekuna/kiwi-storefront-service/internal/user/dto"
	"github.com/fekuna/kiwi-storefront-service/pkg/i18n"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const ServiceName = "kiwifarm.user.v1.UserService"

type UserServiceServer interface {
	Signup(context.Context, *dto.SignupRequest) (*dto.UserResponse, error)
	Login(context.Context, *dto.LoginRequest) (*dto.UserResponse, error)
	Logout(context.Context, *dto.MeRequest) (*dto.UserResponse, error)
	Me(context.Context, *dto.MeRequest) (*dto.UserResponse, error)
	UpdateProfile(context.Context, *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "Signup", UserServiceServer.Signup),
		rpc.Unary(ServiceName, "Login", UserServiceServer.Login),
		rpc.Unary(ServiceName, "Logout", UserServiceServer.Logout),
		rpc.Unary(ServiceName, "Me", UserServiceServer.Me),
		rpc.Unary(ServiceName, "UpdateProfile", UserServiceServer.UpdateProfile),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

type UserHandler struct {
	uc     user.UseCase
	tr     *i18n.Translator
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, tr *i18n.Translator, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

// langs reads the caller's preferred languages from accept-language metadata.
func langs(ctx context.Context) []string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}
	return md.Get("accept-language")
}

func session(ctx context.Context) (string, error) {
	s := auth.GetSessionID(ctx)
	if s == "" {
		return "", status.Error(codes.Unauthenticated, "missing session")
	}
	return s, nil
}

func (h *UserHandler) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	u, err := h.uc.Signup(ctx, sid, &dto.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, h.mapError(ctx, err, "SignupFailed")
	}
	return &dto.UserResponse{User: dto.FromModel(u), Message: h.tr.T("SignupSuccess", nil, langs(ctx)...)}, nil
}

func (h *UserHandler) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	u, err := h.uc.Login(ctx, sid, &dto.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, h.mapError(ctx, err, "LoginFailed")
	}
	return &dto.UserResponse{User: dto.FromModel(u), Message: h.tr.T("LoginSuccess", nil, langs(ctx)...)}, nil
}

func (h *UserHandler) Logout(ctx context.Context, _ *dto.MeRequest) (*dto.UserResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Logout(ctx, sid); err != nil {
		return nil, h.mapError(ctx, err, "LoginFailed")
	}
	return &dto.UserResponse{Message: h.tr.T("LoggedOut", nil, langs(ctx)...)}, nil
}

func (h *UserHandler) Me(ctx context.Context, _ *dto.MeRequest) (*dto.UserResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	u, err := h.uc.CurrentUser(ctx, sid)
	if err != nil {
		return nil, h.mapError(ctx, err, "LoginFailed")
	}
	return &dto.UserResponse{User: dto.FromModel(u)}, nil
}

func (h *UserHandler) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	u, err := h.uc.UpdateProfile(ctx, sid, &dto.UpdateProfileInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return nil, h.mapError(ctx, err, "SignupFailed")
	}
	return &dto.UserResponse{User: dto.FromModel(u), Message: h.tr.T("ProfileUpdated", nil, langs(ctx)...)}, nil
}

// mapError turns use case errors into statuses carrying a localized message;
// fallbackID names the message for unexpected failures.
func (h *UserHandler) mapError(ctx context.Context, err error, fallbackID string) error {
	l := langs(ctx)
	switch {
	case errors.Is(err, user.ErrMissingFields):
		return status.Error(codes.InvalidArgument, h.tr.T("MissingFields", nil, l...))
	case errors.Is(err, user.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, h.tr.T("EmailTaken", nil, l...))
	case errors.Is(err, user.ErrUserNotFound):
		return status.Error(codes.NotFound, h.tr.T("UserNotFound", nil, l...))
	case errors.Is(err, user.ErrNotLoggedIn):
		return status.Error(codes.Unauthenticated, h.tr.T("NotLoggedIn", nil, l...))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}
	h.logger.Error("user operation failed", zap.Error(err))
	return status.Error(codes.Internal, h.tr.T(fallbackID, nil, l...))
}
