package handler

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/fekuna/kiwi-storefront-service/internal/category"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
	"github.com/fekuna/kiwi-storefront-service/internal/search/dto"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "kiwifarm.search.v1.SearchService"

type SearchServiceServer interface {
	QuickSearch(context.Context, *dto.QuickSearchRequest) (*dto.QuickSearchResponse, error)
	FullSearch(context.Context, *dto.FullSearchRequest) (*dto.FullSearchResponse, error)
	QuickSearchSession(grpc.BidiStreamingServer[dto.SessionEvent, dto.SessionState]) error
}

var SearchServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SearchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "QuickSearch", SearchServiceServer.QuickSearch),
		rpc.Unary(ServiceName, "FullSearch", SearchServiceServer.FullSearch),
	},
	Streams: []grpc.StreamDesc{
		rpc.BidiStream("QuickSearchSession", SearchServiceServer.QuickSearchSession),
	},
}

func RegisterSearchServiceServer(s grpc.ServiceRegistrar, srv SearchServiceServer) {
	s.RegisterService(&SearchServiceDesc, srv)
}

type SearchHandler struct {
	uc     search.UseCase
	logger logger.ZapLogger
}

func NewSearchHandler(uc search.UseCase, log logger.ZapLogger) *SearchHandler {
	return &SearchHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SearchHandler) QuickSearch(ctx context.Context, req *dto.QuickSearchRequest) (*dto.QuickSearchResponse, error) {
	res, err := h.uc.QuickSearch(ctx, req.Query)
	if err != nil {
		h.logger.Error("quick search failed", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return dto.FromResult(res), nil
}

func (h *SearchHandler) FullSearch(ctx context.Context, req *dto.FullSearchRequest) (*dto.FullSearchResponse, error) {
	res, err := h.uc.FullSearch(ctx, req.ToParams())
	if err != nil {
		return nil, mapSearchError(err)
	}
	return dto.FromFullResult(res), nil
}

// QuickSearchSession answers every client event with the resulting session state and
// pushes an extra state whenever a debounced search pass completes.
func (h *SearchHandler) QuickSearchSession(stream grpc.BidiStreamingServer[dto.SessionEvent, dto.SessionState]) error {
	var (
		sendMu sync.Mutex
		done   bool
	)
	send := func(st *dto.SessionState) error {
		if done {
			return nil
		}
		return stream.Send(st)
	}

	sess, err := h.uc.NewQuickSession(stream.Context(), func(st search.SessionState) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if err := send(dto.FromSessionState(st, nil)); err != nil {
			h.logger.Debug("push search results", zap.Error(err))
		}
	})
	if err != nil {
		h.logger.Error("failed to start search session", zap.Error(err))
		return status.Error(codes.Internal, err.Error())
	}
	defer func() {
		sess.Close()
		sendMu.Lock()
		done = true
		sendMu.Unlock()
	}()

	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		// The reply to an event is sent under sendMu so a debounced push cannot overtake it.
		sendMu.Lock()
		st, selected, err := apply(sess, ev)
		if err == nil {
			err = send(dto.FromSessionState(st, selected))
		}
		sendMu.Unlock()
		if err != nil {
			return err
		}
	}
}

func apply(sess *search.QuickSession, ev *dto.SessionEvent) (search.SessionState, *model.Product, error) {
	switch ev.Type {
	case dto.EventOpen:
		return sess.Open(), nil, nil
	case dto.EventType:
		return sess.Type(ev.Query), nil, nil
	case dto.EventNext:
		return sess.Next(), nil, nil
	case dto.EventPrev:
		return sess.Prev(), nil, nil
	case dto.EventConfirm:
		p, ok := sess.Confirm()
		if !ok {
			return sess.State(), nil, nil
		}
		return sess.State(), &p, nil
	case dto.EventCancel:
		return sess.Cancel(), nil, nil
	}
	return search.SessionState{}, nil, status.Errorf(codes.InvalidArgument, "unknown session event %q", ev.Type)
}

func mapSearchError(err error) error {
	switch {
	case errors.Is(err, search.ErrInvalidSortKey),
		errors.Is(err, search.ErrInvalidSortOrder),
		errors.Is(err, search.ErrInvalidPriceRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, category.ErrCategoryNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
