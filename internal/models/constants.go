package models

// ============================================================================
// DATABASE NAMES
// ============================================================================

// DefaultDatabaseName is the schema/database name used on the relational,
// document and key-value backends.
const DefaultDatabaseName = "hcmus_master_coffeehouse_sample"

// DefaultGraphDatabaseName is the graph database name. Neo4j only accepts
// simple names, so it cannot share the underscored one.
const DefaultGraphDatabaseName = "HCMUSMasterCoffeeHouseSample"

// ============================================================================
// IDENTIFIERS
// ============================================================================

// EmployeeIDPrefix prefixes the global sequence number of new employees.
const EmployeeIDPrefix = "EN"

// MemberIDFormat renders a global sequence number into a member id.
const MemberIDFormat = "TCHMN0000%dS"

// ============================================================================
// MEMBER DEFAULTS
// ============================================================================

// DefaultMemberLevel is assigned to newly created member accounts.
const DefaultMemberLevel = "Standard"

// AvatarFolder is where avatar images live.
const AvatarFolder = "assets/avatars/"

// DefaultAvatarPath is returned for members without an avatar on file.
const DefaultAvatarPath = AvatarFolder + "default.png"

// DateLayout is the wire/display layout for calendar dates.
const DateLayout = "2006-01-02"

// DemoUsername and DemoPassword name the sample member account that the
// login form is prefilled with when auto_fill_password is set. The account
// ships with the document fixture.
const (
	DemoUsername = "Doraemon"
	DemoPassword = "lltt"
)
