// internal/domain/user/address_service.go
package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrAddressNotFound is returned when an address does not exist or does
// not belong to the requesting user
var ErrAddressNotFound = errors.New("address not found")

// AddressService handles shipping address management
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddAddressRequest represents a new shipping address
type AddAddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required,max=20"`
	Mobile       string `json:"mobile" binding:"required,len=11"`
	Detail       string `json:"detail" binding:"required,max=256"`
	ZipCode      string `json:"zip_code" binding:"omitempty,len=6"`
}

// Add creates an address for a user. The first address a user adds
// becomes their default.
func (s *AddressService) Add(ctx context.Context, userID uint, req *AddAddressRequest) (*Address, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Address{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	address := &Address{
		UserID:       userID,
		ReceiverName: req.ReceiverName,
		Mobile:       req.Mobile,
		Detail:       req.Detail,
		ZipCode:      req.ZipCode,
		IsDefault:    count == 0,
	}
	if err := s.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// List returns a user's addresses, newest first
func (s *AddressService) List(ctx context.Context, userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Get returns one of the user's addresses by id
func (s *AddressService) Get(ctx context.Context, userID, addressID uint) (*Address, error) {
	var address Address
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

// Latest returns the user's most recently added address, nil when the
// user has none
func (s *AddressService) Latest(ctx context.Context, userID uint) (*Address, error) {
	var address Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// SetDefault marks one address as the user's default and clears the flag
// on the rest
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAddressNotFound
		}

		return tx.Model(&Address{}).
			Where("user_id = ? AND id <> ?", userID, addressID).
			Update("is_default", false).Error
	})
}
