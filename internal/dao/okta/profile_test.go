package okta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idm-okta/internal/model"
)

const testGUID = "6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1"

func TestMapUser(t *testing.T) {
	lastLogin := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	pu := &model.ProviderUser{
		ID:     "00u1",
		Status: model.StatusActive,
		Profile: map[string]any{
			"theKeyGuid":          testGUID,
			"login":               "john@example.com",
			"email":               "john@example.com",
			"firstName":           "John",
			"nickName":            "Jack",
			"lastName":            "Doe",
			"primaryPhone":        "555-0100",
			"city":                "Orlando",
			"state":               "FL",
			"zipCode":             "32832",
			"cruCountryCode":      "US",
			"organization":        "M1",
			"division":            "D1",
			"department":          "100",
			"managerId":           "000999",
			"usEmployeeId":        "000123",
			"usDesignationNumber": "2000000",
			"emailAliases":        []any{"jd@cru.org", 42},
			"orca":                true,
			"grMasterPersonId":    "gm",
			"thekeyGrPersonId":    "gp",
		},
		LastLogin: &lastLogin,
	}

	u := mapUser(pu)

	assert.Equal(t, "00u1", u.OktaUserID)
	assert.Equal(t, testGUID, u.TheKeyGUID)
	assert.Equal(t, testGUID, u.RelayGUID)
	assert.False(t, u.Deactivated)
	assert.True(t, u.EmailVerified)
	assert.Equal(t, "john@example.com", u.Email)
	assert.Equal(t, "Jack", u.PreferredName)
	assert.Equal(t, "555-0100", u.TelephoneNumber)
	assert.Equal(t, "32832", u.Postal)
	assert.Equal(t, "US", u.Country)
	assert.Equal(t, "M1", u.MinistryCode)
	assert.Equal(t, "D1", u.SubMinistryCode)
	assert.Equal(t, "100", u.DepartmentNumber)
	assert.Equal(t, "000999", u.ManagerID)
	assert.Equal(t, "000123", u.EmployeeID)
	assert.Equal(t, "2000000", u.Designation)
	assert.Equal(t, []string{"jd@cru.org"}, u.ProxyAddresses)
	assert.True(t, u.Orca)
	assert.Equal(t, "gm", u.GRMasterPersonID)
	assert.Equal(t, "gp", u.GRPersonID)
	assert.Equal(t, &lastLogin, u.LoginTime)
	assert.Nil(t, u.Groups)
}

func TestMapUser_MissingAttributes(t *testing.T) {
	u := mapUser(&model.ProviderUser{ID: "00u1", Profile: map[string]any{"relayGuid": "relay"}})

	assert.Equal(t, "relay", u.RelayGUID)
	assert.Empty(t, u.Email)
	assert.Empty(t, u.FirstName)
	assert.Nil(t, u.ProxyAddresses)
	assert.Nil(t, u.LoginTime)
	assert.False(t, u.Deactivated)
}

func TestMapUser_Deactivated(t *testing.T) {
	tests := []struct {
		name    string
		profile map[string]any
		email   string
	}{
		{
			name: "deactivated email",
			profile: map[string]any{
				"login":          DeactivatedEmail(testGUID),
				"email":          DeactivatedEmail(testGUID),
				"original_email": "john@example.com",
			},
			email: "john@example.com",
		},
		{
			name: "legacy login with original email",
			profile: map[string]any{
				"login":          "$GUID$-=" + testGUID,
				"email":          "legacy@example.com",
				"original_email": "john@example.com",
			},
			email: "john@example.com",
		},
		{
			name: "legacy login without original email",
			profile: map[string]any{
				"login": "$GUID$-=" + testGUID,
				"email": "legacy@example.com",
			},
			email: "legacy@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mapUser(&model.ProviderUser{ID: "00u1", Profile: tt.profile})
			assert.True(t, u.Deactivated)
			assert.Equal(t, tt.email, u.Email)
		})
	}

	t.Run("legacy prefix with at sign is not deactivated", func(t *testing.T) {
		u := mapUser(&model.ProviderUser{ID: "00u1", Profile: map[string]any{
			"login": "$GUID$-=john@example.com",
			"email": "john@example.com",
		}})
		assert.False(t, u.Deactivated)
	})
}

func TestBuildPatch(t *testing.T) {
	u := &model.User{
		TheKeyGUID:    testGUID,
		Email:         "john@example.com",
		FirstName:     "John",
		PreferredName: "Jack",
		LastName:      "Doe",
		City:          "Orlando",
		Password:      "s3cret!",
	}

	t.Run("default attrs write email and name keys only", func(t *testing.T) {
		patch := buildPatch(u, model.NormalizeAttrs())

		assert.Equal(t, model.ProfilePatch{
			"email":          "john@example.com",
			"login":          "john@example.com",
			"original_email": nil,
			"firstName":      "John",
			"nickName":       "Jack",
			"lastName":       "Doe",
		}, patch.Profile)
		assert.Nil(t, patch.Password)
	})

	t.Run("deactivated email", func(t *testing.T) {
		du := *u
		du.Deactivated = true
		patch := buildPatch(&du, []model.Attr{model.AttrEmail})

		assert.Equal(t, DeactivatedEmail(testGUID), patch.Profile["email"])
		assert.Equal(t, patch.Profile["email"], patch.Profile["login"])
		assert.Equal(t, "john@example.com", patch.Profile["original_email"])
	})

	t.Run("password", func(t *testing.T) {
		patch := buildPatch(u, []model.Attr{model.AttrPassword})
		require.NotNil(t, patch.Password)
		assert.Equal(t, "s3cret!", *patch.Password)
		assert.Empty(t, patch.Profile)
	})

	t.Run("fallback only attrs", func(t *testing.T) {
		attrs := []model.Attr{model.AttrFlags, model.AttrSecurityQA, model.AttrMFASecret, model.AttrLoginTime}
		assert.True(t, buildPatch(u, attrs).Empty())
		assert.False(t, providerAttrs(attrs))
	})
}

func TestEmailRoundTrip(t *testing.T) {
	for _, email := range []string{"john@example.com", "a.b+c@sub.example.org"} {
		u := &model.User{TheKeyGUID: testGUID, Email: email}
		patch := buildPatch(u, []model.Attr{model.AttrEmail})

		back := mapUser(&model.ProviderUser{ID: "00u1", Profile: patch.Profile})
		assert.Equal(t, email, back.Email)
		assert.False(t, back.Deactivated)
	}
}

func TestCreateProfile(t *testing.T) {
	u := &model.User{TheKeyGUID: testGUID, RelayGUID: "relay", Email: "john@example.com", FirstName: "John"}
	p := createProfile(u)

	assert.Equal(t, testGUID, p["theKeyGuid"])
	assert.Equal(t, "relay", p["relayGuid"])
	assert.Equal(t, "john@example.com", p["email"])
	assert.Equal(t, "john@example.com", p["login"])
	assert.Equal(t, []string{}, p["emailAliases"])
	assert.Equal(t, false, p["orca"])
}
