package handler

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/internal/product/dto"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "kiwifarm.product.v1.ProductService"

type ProductServiceServer interface {
	ListProducts(context.Context, *dto.ListProductsRequest) (*dto.ListProductsResponse, error)
	GetProduct(context.Context, *dto.GetProductRequest) (*dto.ProductResponse, error)
}

var ProductServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListProducts", ProductServiceServer.ListProducts),
		rpc.Unary(ServiceName, "GetProduct", ProductServiceServer.GetProduct),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductServiceDesc, srv)
}

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *dto.ListProductsRequest) (*dto.ListProductsResponse, error) {
	products, err := h.uc.ListProducts(ctx)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &dto.ListProductsResponse{
		Products: dto.FromModels(products),
		Total:    int32(len(products)),
	}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *dto.GetProductRequest) (*dto.ProductResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, status.Error(codes.NotFound, "product not found")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &dto.ProductResponse{Product: dto.FromModel(p)}, nil
}
