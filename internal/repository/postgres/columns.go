package postgres

import (
	"time"

	"github.com/dtroode/idm-okta/internal/model"
)

// column binds a legacy_users column to the User field it stores. field
// returns a pointer so the same table serves both writes and scans.
type column struct {
	name  string
	field func(u *model.User) any
}

var (
	colTheKeyGUID       = column{"the_key_guid", func(u *model.User) any { return &u.TheKeyGUID }}
	colRelayGUID        = column{"relay_guid", func(u *model.User) any { return &u.RelayGUID }}
	colEmail            = column{"email", func(u *model.User) any { return &u.Email }}
	colEmailVerified    = column{"email_verified", func(u *model.User) any { return &u.EmailVerified }}
	colDeactivated      = column{"deactivated", func(u *model.User) any { return &u.Deactivated }}
	colFirstName        = column{"first_name", func(u *model.User) any { return &u.FirstName }}
	colPreferredName    = column{"preferred_name", func(u *model.User) any { return &u.PreferredName }}
	colLastName         = column{"last_name", func(u *model.User) any { return &u.LastName }}
	colTelephoneNumber  = column{"telephone_number", func(u *model.User) any { return &u.TelephoneNumber }}
	colCity             = column{"city", func(u *model.User) any { return &u.City }}
	colState            = column{"state", func(u *model.User) any { return &u.State }}
	colPostal           = column{"postal", func(u *model.User) any { return &u.Postal }}
	colCountry          = column{"country", func(u *model.User) any { return &u.Country }}
	colMinistryCode     = column{"ministry_code", func(u *model.User) any { return &u.MinistryCode }}
	colSubMinistryCode  = column{"sub_ministry_code", func(u *model.User) any { return &u.SubMinistryCode }}
	colDepartmentNumber = column{"department_number", func(u *model.User) any { return &u.DepartmentNumber }}
	colManagerID        = column{"manager_id", func(u *model.User) any { return &u.ManagerID }}
	colEmployeeStatus   = column{"employee_status", func(u *model.User) any { return &u.EmployeeStatus }}
	colEmployeeID       = column{"employee_id", func(u *model.User) any { return &u.EmployeeID }}
	colDesignation      = column{"designation", func(u *model.User) any { return &u.Designation }}
	colOrca             = column{"orca", func(u *model.User) any { return &u.Orca }}
	colGRMasterPersonID = column{"gr_master_person_id", func(u *model.User) any { return &u.GRMasterPersonID }}
	colGRPersonID       = column{"gr_person_id", func(u *model.User) any { return &u.GRPersonID }}
	colMFABypassed      = column{"mfa_bypassed", func(u *model.User) any { return &u.MFABypassed }}
	colMFASecret        = column{"mfa_encrypted_secret", func(u *model.User) any { return &u.MFAEncryptedSecret }}
	colMFALocked        = column{"mfa_intruder_locked", func(u *model.User) any { return &u.MFAIntruderLocked }}
	colMFAAttempts      = column{"mfa_intruder_attempts", func(u *model.User) any { return &u.MFAIntruderAttempts }}
	colMFAResetTime     = column{"mfa_intruder_reset_time", func(u *model.User) any { return &u.MFAIntruderResetTime }}
	colSignupKey        = column{"signup_key", func(u *model.User) any { return &u.SignupKey }}
	colProposedEmail    = column{"proposed_email", func(u *model.User) any { return &u.ProposedEmail }}
	colChangeEmailKey   = column{"change_email_key", func(u *model.User) any { return &u.ChangeEmailKey }}
	colResetPasswordKey = column{"reset_password_key", func(u *model.User) any { return &u.ResetPasswordKey }}
	colSecurityQuestion = column{"security_question", func(u *model.User) any { return &u.SecurityQuestion }}
	colSecurityAnswer   = column{"security_answer", func(u *model.User) any { return &u.SecurityAnswer }}
	colLoginTime        = column{"login_time", func(u *model.User) any { return &u.LoginTime }}
)

// userColumns is every stored column in table order.
var userColumns = []column{
	colTheKeyGUID, colRelayGUID, colEmail, colEmailVerified, colDeactivated,
	colFirstName, colPreferredName, colLastName,
	colTelephoneNumber, colCity, colState, colPostal, colCountry,
	colMinistryCode, colSubMinistryCode, colDepartmentNumber, colManagerID, colEmployeeStatus,
	colEmployeeID, colDesignation, colOrca, colGRMasterPersonID, colGRPersonID,
	colMFABypassed, colMFASecret, colMFALocked, colMFAAttempts, colMFAResetTime,
	colSignupKey, colProposedEmail, colChangeEmailKey, colResetPasswordKey,
	colSecurityQuestion, colSecurityAnswer, colLoginTime,
}

// attrColumns lists the columns written for each attribute group. Update is a
// general store write, so every column Save fills except the identifying GUIDs
// is reachable through some group, not just the groups the Okta listener syncs.
// Groups missing here, such as PASSWORD, are not kept in the legacy store.
var attrColumns = map[model.Attr][]column{
	model.AttrEmail:                {colEmail},
	model.AttrName:                 {colFirstName, colPreferredName, colLastName},
	model.AttrPreferredName:        {colPreferredName},
	model.AttrContact:              {colTelephoneNumber},
	model.AttrLocation:             {colCity, colState, colPostal, colCountry},
	model.AttrEmployeeNumber:       {colEmployeeID},
	model.AttrDesignation:          {colDesignation},
	model.AttrHumanResource:        {colMinistryCode, colSubMinistryCode, colDepartmentNumber, colManagerID, colEmployeeStatus},
	model.AttrOrca:                 {colOrca},
	model.AttrFlags:                {colEmailVerified, colDeactivated},
	model.AttrGlobalRegistry:       {colGRMasterPersonID, colGRPersonID},
	model.AttrMFASecret:            {colMFABypassed, colMFASecret},
	model.AttrMFAIntruderDetection: {colMFALocked, colMFAAttempts, colMFAResetTime},
	model.AttrSelfServiceKeys:      {colSignupKey, colProposedEmail, colChangeEmailKey, colResetPasswordKey},
	model.AttrSecurityQA:           {colSecurityQuestion, colSecurityAnswer},
	model.AttrLoginTime:            {colLoginTime},
}

// columnsFor returns the distinct columns of attrs in request order.
func columnsFor(attrs []model.Attr) []column {
	seen := make(map[string]struct{})
	var out []column
	for _, a := range attrs {
		for _, c := range attrColumns[a] {
			if _, ok := seen[c.name]; ok {
				continue
			}
			seen[c.name] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// scanTargets returns pointers into u for rows.Scan.
func scanTargets(u *model.User, cols []column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c.field(u)
	}
	return out
}

// values returns the query arguments for cols, with unset timestamps as NULL.
func values(u *model.User, cols []column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		switch v := c.field(u).(type) {
		case *string:
			out[i] = *v
		case *bool:
			out[i] = *v
		case *int:
			out[i] = *v
		case **time.Time:
			if *v != nil {
				out[i] = **v
			}
		}
	}
	return out
}
