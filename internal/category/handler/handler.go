package handler

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/category"
	"github.com/fekuna/kiwi-storefront-service/internal/category/dto"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "kiwifarm.product.v1.CategoryService"

type CategoryServiceServer interface {
	ListCategories(context.Context, *dto.ListCategoriesRequest) (*dto.ListCategoriesResponse, error)
}

var CategoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListCategories", CategoryServiceServer.ListCategories),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryServiceDesc, srv)
}

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) ListCategories(ctx context.Context, req *dto.ListCategoriesRequest) (*dto.ListCategoriesResponse, error) {
	categories, err := h.uc.ListCategories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &dto.ListCategoriesResponse{Categories: dto.FromModels(categories)}, nil
}
