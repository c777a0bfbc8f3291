package service

import (
	"context"
	"fmt"
	"strconv"

	"resumade/internal/database"
)

// ResumeFetcher 是属主校验所需的最小读取接口。
type ResumeFetcher interface {
	ResumeByID(ctx context.Context, id uint) (*database.Resume, error)
}

// Guard 在实体操作之前做属主校验。
// 校验独立于实体服务，方便在任意传输层前统一套用并单独测试。
type Guard struct {
	resumes ResumeFetcher
}

// NewGuard 构造 Guard。
func NewGuard(resumes ResumeFetcher) *Guard {
	return &Guard{resumes: resumes}
}

// Authorize 取出目标简历并校验归属。
// 目标不存在时透传 ErrNotFound；属主不匹配时返回 ErrForbidden，
// 且不在错误中泄露简历内容。
func (g *Guard) Authorize(ctx context.Context, resumeID, callerID uint) (*database.Resume, error) {
	rec, err := g.resumes.ResumeByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	owner := strconv.FormatUint(uint64(rec.UserID), 10)
	caller := strconv.FormatUint(uint64(callerID), 10)
	if owner != caller {
		return nil, fmt.Errorf("%w: resume belongs to another user", ErrForbidden)
	}
	return rec, nil
}
