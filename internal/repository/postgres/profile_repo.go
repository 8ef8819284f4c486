package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hisaab/internal/domain"
	"hisaab/internal/port"
)

const profileColumns = `business_name, tagline, gst_registered, gstin, pan,
	address1, address2, district, state, pincode, mobile, email, theme,
	bank_name, bank_branch, account_no, ifsc, upi, logo_key, signature_key, updated_at`

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Get(ctx context.Context) (*domain.SellerProfile, error) {
	var p domain.SellerProfile
	err := r.db.GetContext(ctx, &p, "SELECT "+profileColumns+" FROM seller_profile WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotConfigured
		}
		return nil, fmt.Errorf("profileRepo.Get: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *domain.SellerProfile) error {
	p.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO seller_profile (id, ` + profileColumns + `)
		VALUES (1, :business_name, :tagline, :gst_registered, :gstin, :pan,
			:address1, :address2, :district, :state, :pincode, :mobile, :email, :theme,
			:bank_name, :bank_branch, :account_no, :ifsc, :upi, :logo_key, :signature_key, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name, tagline = EXCLUDED.tagline,
			gst_registered = EXCLUDED.gst_registered, gstin = EXCLUDED.gstin, pan = EXCLUDED.pan,
			address1 = EXCLUDED.address1, address2 = EXCLUDED.address2,
			district = EXCLUDED.district, state = EXCLUDED.state, pincode = EXCLUDED.pincode,
			mobile = EXCLUDED.mobile, email = EXCLUDED.email, theme = EXCLUDED.theme,
			bank_name = EXCLUDED.bank_name, bank_branch = EXCLUDED.bank_branch,
			account_no = EXCLUDED.account_no, ifsc = EXCLUDED.ifsc, upi = EXCLUDED.upi,
			logo_key = EXCLUDED.logo_key, signature_key = EXCLUDED.signature_key,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("profileRepo.Upsert: %w", err)
	}
	return nil
}
