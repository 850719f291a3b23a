package okta

import (
	"fmt"
	"strings"

	"github.com/dtroode/idm-okta/internal/model"
)

const (
	profileTheKeyGUID = "theKeyGuid"
	profileRelayGUID  = "relayGuid"
	profileLogin      = "login"
	profileEmail      = "email"
	profileFirstName  = "firstName"
	profileNickName   = "nickName"
	profileLastName   = "lastName"

	profilePhoneNumber = "primaryPhone"
	profileCity        = "city"
	profileState       = "state"
	profileZipCode     = "zipCode"
	profileCountry     = "cruCountryCode"

	profileUSEmployeeID  = "usEmployeeId"
	profileUSDesignation = "usDesignationNumber"

	profileOrganization = "organization"
	profileDivision     = "division"
	profileDepartment   = "department"
	profileManagerID    = "managerId"

	profileOriginalEmail = "original_email"
	profileEmailAliases  = "emailAliases"

	profileGRMasterPersonID = "grMasterPersonId"
	profileGRPersonID       = "thekeyGrPersonId"

	profileOrca = "orca"
)

const (
	deactivatedPrefix = "$GUID-"
	deactivatedSuffix = "@deactivated.cru.org"
	deactivatedLegacy = "$GUID$-="
)

// DeactivatedEmail returns the synthetic email written for a deactivated user.
func DeactivatedEmail(guid string) string {
	return deactivatedPrefix + guid + deactivatedSuffix
}

func isDeactivatedEmail(email string) bool {
	return strings.HasPrefix(email, deactivatedPrefix) && strings.HasSuffix(email, deactivatedSuffix)
}

func isLegacyDeactivatedLogin(login string) bool {
	return strings.HasPrefix(login, deactivatedLegacy) && !strings.Contains(login, "@")
}

// mapUser builds a User from a provider profile. Group membership is not loaded.
func mapUser(pu *model.ProviderUser) *model.User {
	p := pu.Profile
	email := getString(p, profileEmail)
	login := getString(p, profileLogin)

	u := &model.User{
		OktaUserID:    pu.ID,
		TheKeyGUID:    getString(p, profileTheKeyGUID),
		RelayGUID:     getString(p, profileRelayGUID),
		EmailVerified: true,

		FirstName:       getString(p, profileFirstName),
		PreferredName:   getString(p, profileNickName),
		LastName:        getString(p, profileLastName),
		TelephoneNumber: getString(p, profilePhoneNumber),

		City:    getString(p, profileCity),
		State:   getString(p, profileState),
		Postal:  getString(p, profileZipCode),
		Country: getString(p, profileCountry),

		MinistryCode:     getString(p, profileOrganization),
		SubMinistryCode:  getString(p, profileDivision),
		DepartmentNumber: getString(p, profileDepartment),
		ManagerID:        getString(p, profileManagerID),

		EmployeeID:     getString(p, profileUSEmployeeID),
		Designation:    getString(p, profileUSDesignation),
		ProxyAddresses: getStringList(p, profileEmailAliases),
		Orca:           getBool(p, profileOrca),

		GRMasterPersonID: getString(p, profileGRMasterPersonID),
		GRPersonID:       getString(p, profileGRPersonID),

		LoginTime: pu.LastLogin,
	}
	if u.RelayGUID == "" {
		u.RelayGUID = u.TheKeyGUID
	}

	deactivated := isDeactivatedEmail(email)
	legacyDeactivated := isLegacyDeactivatedLogin(login)
	u.Deactivated = deactivated || legacyDeactivated
	switch {
	case deactivated:
		u.Email = getString(p, profileOriginalEmail)
	case legacyDeactivated:
		u.Email = getString(p, profileOriginalEmail)
		if u.Email == "" {
			u.Email = email
		}
	default:
		u.Email = email
	}

	return u
}

// createProfile builds the full profile payload for a new provider user.
func createProfile(u *model.User) model.ProfilePatch {
	return model.ProfilePatch{
		profileTheKeyGUID:    u.TheKeyGUID,
		profileRelayGUID:     u.RelayGUID,
		profileLogin:         u.Email,
		profileEmail:         u.Email,
		profileFirstName:     u.FirstName,
		profileNickName:      u.PreferredName,
		profileLastName:      u.LastName,
		profileUSEmployeeID:  u.EmployeeID,
		profileUSDesignation: u.Designation,
		profilePhoneNumber:   u.TelephoneNumber,
		profileEmailAliases:  proxyAddresses(u),
		profileOrca:          u.Orca,

		profileCity:    u.City,
		profileState:   u.State,
		profileZipCode: u.Postal,
		profileCountry: u.Country,

		profileOrganization: u.MinistryCode,
		profileDivision:     u.SubMinistryCode,
		profileDepartment:   u.DepartmentNumber,
		profileManagerID:    u.ManagerID,
	}
}

// patcher writes the provider fields owned by one attribute group.
type patcher func(patch *model.UserPatch, u *model.User)

// patchers lists every attribute group with a provider side representation.
// Groups missing here are kept only in the fallback store, or not at all.
var patchers = map[model.Attr]patcher{
	model.AttrEmail: func(patch *model.UserPatch, u *model.User) {
		email := u.Email
		var original any
		if u.Deactivated {
			email = DeactivatedEmail(u.TheKeyGUID)
			if u.Email != "" {
				original = u.Email
			}
		}
		patch.Profile[profileEmail] = email
		patch.Profile[profileLogin] = email
		patch.Profile[profileOriginalEmail] = original
	},
	model.AttrPassword: func(patch *model.UserPatch, u *model.User) {
		password := u.Password
		patch.Password = &password
	},
	model.AttrName: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileFirstName] = u.FirstName
		patch.Profile[profileNickName] = u.PreferredName
		patch.Profile[profileLastName] = u.LastName
	},
	model.AttrPreferredName: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileNickName] = u.PreferredName
	},
	model.AttrContact: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profilePhoneNumber] = u.TelephoneNumber
	},
	model.AttrLocation: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileCity] = u.City
		patch.Profile[profileState] = u.State
		patch.Profile[profileZipCode] = u.Postal
		patch.Profile[profileCountry] = u.Country
	},
	model.AttrEmployeeNumber: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileUSEmployeeID] = u.EmployeeID
	},
	model.AttrDesignation: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileUSDesignation] = u.Designation
	},
	model.AttrHumanResource: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileOrganization] = u.MinistryCode
		patch.Profile[profileDivision] = u.SubMinistryCode
		patch.Profile[profileDepartment] = u.DepartmentNumber
		patch.Profile[profileManagerID] = u.ManagerID
	},
	model.AttrProxyAddresses: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileEmailAliases] = proxyAddresses(u)
	},
	model.AttrOrca: func(patch *model.UserPatch, u *model.User) {
		patch.Profile[profileOrca] = u.Orca
	},
}

// providerAttrs reports whether any of attrs is represented in the provider.
func providerAttrs(attrs []model.Attr) bool {
	for _, a := range attrs {
		if _, ok := patchers[a]; ok {
			return true
		}
	}
	return false
}

// buildPatch applies the patchers of attrs to an empty patch.
func buildPatch(u *model.User, attrs []model.Attr) model.UserPatch {
	patch := model.UserPatch{Profile: model.ProfilePatch{}}
	for _, a := range attrs {
		if p, ok := patchers[a]; ok {
			p(&patch, u)
		}
	}
	return patch
}

func proxyAddresses(u *model.User) []string {
	if u.ProxyAddresses == nil {
		return []string{}
	}
	return u.ProxyAddresses
}

func getString(p map[string]any, key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func getBool(p map[string]any, key string) bool {
	v, _ := p[key].(bool)
	return v
}

func getStringList(p map[string]any, key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
