package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrNoRoleAssigned 调用者没有角色分配
	ErrNoRoleAssigned = errors.New("未分配角色")
	// ErrResourceNotFound 资源级检查的目标不存在
	ErrResourceNotFound = errors.New("资源不存在")
	// ErrUnknownSubject 主体类型不在目录中
	ErrUnknownSubject = errors.New("未知的资源主体类型")
)

// Requirement 单条权限要求；ResourceID非空且操作为read/update/delete时做资源级检查
type Requirement struct {
	Action     model.Action
	Subject    model.Subject
	ResourceID string
}

// AuthorizationService 授权服务接口
type AuthorizationService interface {
	// BuildAbility 加载调用者的角色、分校与启用权限，编译为授权能力。
	// 编译依赖墙钟时间，每次请求重新构建，不跨请求缓存
	BuildAbility(ctx context.Context, staffID string) (*ability.Ability, error)
	// Authorize 逐条检查权限要求，全部通过才放行；显式拒绝优先
	Authorize(ctx context.Context, ab *ability.Ability, requirements []Requirement) error
}

// authorizationService 授权服务实现
type authorizationService struct {
	staffRepo       repository.StaffRepository
	permissionRepo  repository.PermissionRepository
	branchRepo      repository.BranchRepository
	studentRepo     repository.StudentRepository
	tutorRepo       repository.TutorRepository
	roomRepo        repository.RoomRepository
	bookingRepo     repository.BookingRepository
	inscriptionRepo repository.InscriptionRepository
	debtRepo        repository.DebtRepository
	paymentRepo     repository.PaymentRepository
	invoiceRepo     repository.InvoiceRepository
	roleRepo        repository.RoleRepository
	observer        ability.Observer
}

// NewAuthorizationService 创建授权服务实例
func NewAuthorizationService(
	staffRepo repository.StaffRepository,
	permissionRepo repository.PermissionRepository,
	branchRepo repository.BranchRepository,
	studentRepo repository.StudentRepository,
	tutorRepo repository.TutorRepository,
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	inscriptionRepo repository.InscriptionRepository,
	debtRepo repository.DebtRepository,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	roleRepo repository.RoleRepository,
	observer ability.Observer,
) AuthorizationService {
	if observer == nil {
		observer = ability.NopObserver{}
	}
	return &authorizationService{
		staffRepo:       staffRepo,
		permissionRepo:  permissionRepo,
		branchRepo:      branchRepo,
		studentRepo:     studentRepo,
		tutorRepo:       tutorRepo,
		roomRepo:        roomRepo,
		bookingRepo:     bookingRepo,
		inscriptionRepo: inscriptionRepo,
		debtRepo:        debtRepo,
		paymentRepo:     paymentRepo,
		invoiceRepo:     invoiceRepo,
		roleRepo:        roleRepo,
		observer:        observer,
	}
}

// BuildAbility 加载调用者的角色、分校与启用权限，编译为授权能力
func (s *authorizationService) BuildAbility(ctx context.Context, staffID string) (*ability.Ability, error) {
	staff, err := s.staffRepo.GetWithAccess(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.RoleID == "" {
		return nil, ErrNoRoleAssigned
	}

	permissions, err := s.permissionRepo.ListActiveByRole(ctx, staff.RoleID)
	if err != nil {
		return nil, err
	}

	runtimeCtx := ability.NewContext(staff.ID, staff.RoleID, staff.BranchIDs(), time.Now())
	return ability.New(permissions, runtimeCtx), nil
}

// Authorize 逐条检查权限要求，全部通过才放行
func (s *authorizationService) Authorize(ctx context.Context, ab *ability.Ability, requirements []Requirement) error {
	for _, req := range requirements {
		var target map[string]any
		if req.ResourceID != "" && resourceScoped(req.Action) {
			loaded, err := s.loadResource(ctx, req.Subject, req.ResourceID)
			if err != nil {
				return err
			}
			if loaded == nil {
				return ErrResourceNotFound
			}
			target = loaded
		}

		err := ab.Can(req.Action, req.Subject, target)
		s.observer.OnDecision(ability.Decision{
			UserID:  ab.Context().UserID,
			Action:  req.Action,
			Subject: req.Subject,
			Allowed: err == nil,
			Reason:  denialReason(err),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// resourceScoped 判断操作是否需要对具体资源实例做检查
func resourceScoped(action model.Action) bool {
	switch action {
	case model.ActionRead, model.ActionUpdate, model.ActionDelete:
		return true
	}
	return false
}

// denialReason 提取拒绝原因
func denialReason(err error) string {
	var forbidden *ability.ForbiddenError
	if errors.As(err, &forbidden) {
		return forbidden.Reason
	}
	return ""
}

// loadResource 按主体类型加载资源的属性快照；枚举穷尽，
// 新增主体类型时编译期强制补全分派
func (s *authorizationService) loadResource(ctx context.Context, subject model.Subject, id string) (map[string]any, error) {
	var entity any
	var err error
	switch subject {
	case model.SubjectBranch:
		entity, err = nilable(s.branchRepo.GetByID(ctx, id))
	case model.SubjectStaff:
		entity, err = nilable(s.staffRepo.GetByID(ctx, id))
	case model.SubjectStudent:
		entity, err = nilable(s.studentRepo.GetByID(ctx, id))
	case model.SubjectTutor:
		entity, err = nilable(s.tutorRepo.GetByID(ctx, id))
	case model.SubjectRoom:
		entity, err = nilable(s.roomRepo.GetByID(ctx, id))
	case model.SubjectBooking:
		entity, err = nilable(s.bookingRepo.GetByID(ctx, id))
	case model.SubjectInscription:
		entity, err = nilable(s.inscriptionRepo.GetByID(ctx, id))
	case model.SubjectDebt:
		entity, err = nilable(s.debtRepo.GetByID(ctx, id))
	case model.SubjectPayment:
		entity, err = nilable(s.paymentRepo.GetByID(ctx, id))
	case model.SubjectInvoice:
		entity, err = nilable(s.invoiceRepo.GetByID(ctx, id))
	case model.SubjectRole:
		entity, err = nilable(s.roleRepo.GetByID(ctx, id))
	case model.SubjectPermission:
		entity, err = nilable(s.permissionRepo.GetByID(ctx, id))
	case model.SubjectAll:
		return nil, ErrUnknownSubject
	default:
		return nil, ErrUnknownSubject
	}
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}
	return toAttributes(entity)
}

// nilable 把(*T, error)归一为(any, error)，保留nil语义
func nilable[T any](entity *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}
	return entity, nil
}

// toAttributes 把实体转为属性快照，字段级静态条件据此结构化匹配
func toAttributes(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
