package handler

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/auth"
	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/cart/dto"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "kiwifarm.cart.v1.CartService"

type CartServiceServer interface {
	GetCart(context.Context, *dto.GetCartRequest) (*dto.CartResponse, error)
	AddItem(context.Context, *dto.AddItemRequest) (*dto.CartResponse, error)
	RemoveItem(context.Context, *dto.RemoveItemRequest) (*dto.CartResponse, error)
	UpdateQuantity(context.Context, *dto.UpdateQuantityRequest) (*dto.CartResponse, error)
	ClearCart(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Checkout(context.Context, *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.Unary(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.Unary(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
		rpc.Unary(ServiceName, "UpdateQuantity", CartServiceServer.UpdateQuantity),
		rpc.Unary(ServiceName, "ClearCart", CartServiceServer.ClearCart),
		rpc.Unary(ServiceName, "Checkout", CartServiceServer.Checkout),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartServiceDesc, srv)
}

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func session(ctx context.Context) (string, error) {
	s := auth.GetSessionID(ctx)
	if s == "" {
		return "", status.Error(codes.Unauthenticated, "missing session")
	}
	return s, nil
}

func (h *CartHandler) GetCart(ctx context.Context, req *dto.GetCartRequest) (*dto.CartResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := h.uc.GetCart(ctx, sid)
	if err != nil {
		return nil, h.mapError(err)
	}
	return dto.FromSnapshot(snap), nil
}

func (h *CartHandler) AddItem(ctx context.Context, req *dto.AddItemRequest) (*dto.CartResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}
	if req.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	snap, err := h.uc.AddToCart(ctx, sid, req.ProductID)
	if err != nil {
		return nil, h.mapError(err)
	}
	return dto.FromSnapshot(snap), nil
}

func (h *CartHandler) RemoveItem(ctx context.Context, req *dto.RemoveItemRequest) (*dto.CartResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := h.uc.RemoveFromCart(ctx, sid, req.ProductID)
	if err != nil {
		return nil, h.mapError(err)
	}
	return dto.FromSnapshot(snap), nil
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, req *dto.UpdateQuantityRequest) (*dto.CartResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := h.uc.UpdateQuantity(ctx, sid, req.ProductID, int(req.Quantity))
	if err != nil {
		return nil, h.mapError(err)
	}
	return dto.FromSnapshot(snap), nil
}

func (h *CartHandler) ClearCart(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.ClearCart(ctx, sid); err != nil {
		return nil, h.mapError(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *CartHandler) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	sid, err := session(ctx)
	if err != nil {
		return nil, err
	}

	form, err := h.uc.Checkout(ctx, sid)
	if err != nil {
		return nil, h.mapError(err)
	}
	return dto.FromPaymentForm(form), nil
}

func (h *CartHandler) mapError(err error) error {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")
	case errors.Is(err, cart.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	h.logger.Error("cart operation failed", zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}
