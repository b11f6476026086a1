package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"jobboard-backend/internal/config"
	m "jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser     m.User
	TestRecruiter1    m.User
	TestRecruiter2    m.User
	TestRecruiter3    m.User
	TestJobSeeker1    m.User
	TestJobSeeker2    m.User
	TestInactiveUser  m.User
	TestOrganization1 m.Organization
	TestOrganization2 m.Organization

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	TestSkillGo    m.Skill
	TestSkillSQL   m.Skill
	TestSkillReact m.Skill

	// Exported seeded jobs. Job 1 and 2 belong to recruiter 1, job 3 to recruiter 2.
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB returns a migrated and seeded database plus a teardown function.
// It uses in-memory SQLite unless TEST_DB=postgres, in which case a PostgreSQL
// container is started.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		td  func(context.Context, ...testcontainers.TerminateOption) error
		db  *DBinstanceStruct
		err error
	)
	if os.Getenv("TEST_DB") == "postgres" {
		td, db, err = startPostgresContainer()
	} else {
		td, db, err = GetEmptyTestDB()
	}
	if err != nil {
		return td, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = td(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = td
	return td, db, nil
}

// GetEmptyTestDB returns a fresh, migrated, empty in-memory SQLite database.
func GetEmptyTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := NewSQLiteInstance(dsn)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func(context.Context, ...testcontainers.TerminateOption) error {
		return db.Close()
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return closeDB, db, nil
}

func startPostgresContainer() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	db, err := NewDBInstance(config.DBConfig{
		UseConnectionStr: true,
		ConnectionStr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	})
	if err != nil {
		return dbContainer.Terminate, nil, err
	}
	if err := db.Migrate(); err != nil {
		return dbContainer.Terminate, nil, err
	}
	return dbContainer.Terminate, db, nil
}

// seedTestData inserts users, organizations, skills and jobs used across test packages.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	userSpecs := []struct {
		target *m.User
		name   string
		role   m.Role
		active bool
	}{
		{&TestAdminUser, "admin_user", m.RoleAdmin, true},
		{&TestRecruiter1, "recruiter_1", m.RoleRecruiter, true},
		{&TestRecruiter2, "recruiter_2", m.RoleRecruiter, true},
		{&TestRecruiter3, "recruiter_3", m.RoleRecruiter, true},
		{&TestJobSeeker1, "seeker_1", m.RoleJobSeeker, true},
		{&TestJobSeeker2, "seeker_2", m.RoleJobSeeker, true},
		{&TestInactiveUser, "inactive_seeker", m.RoleJobSeeker, false},
	}
	for _, s := range userSpecs {
		u := m.User{
			Username: s.name,
			Email:    s.name + "@example.com",
			Password: hashedPwd,
			Role:     s.role,
			FullName: "Test " + s.name,
			Active:   s.active,
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		*s.target = u
	}

	skills := []m.Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "React"}}
	if err := db.Create(&skills).Error; err != nil {
		return err
	}
	TestSkillGo, TestSkillSQL, TestSkillReact = skills[0], skills[1], skills[2]

	profile := m.JobSeekerProfile{
		UserID:   TestJobSeeker1.ID,
		Headline: "Backend developer",
		Skills: []m.JobSeekerSkill{
			{SkillID: TestSkillGo.ID, Proficiency: m.ProficiencyExpert},
			{SkillID: TestSkillSQL.ID, Proficiency: m.ProficiencyIntermediate},
		},
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	TestOrganization1 = m.Organization{
		EditableOrganizationInfo: m.EditableOrganizationInfo{
			Name:         "TechNova",
			Website:      "https://technova.example",
			City:         "Bangkok",
			ContactEmail: "jobs@technova.example",
		},
		Verified:        true,
		RecruiterUserID: TestRecruiter1.ID,
	}
	TestOrganization2 = m.Organization{
		EditableOrganizationInfo: m.EditableOrganizationInfo{
			Name: "DataForge",
			City: "Chiang Mai",
		},
		RecruiterUserID: TestRecruiter2.ID,
	}
	if err := db.Create(&TestOrganization1).Error; err != nil {
		return err
	}
	if err := db.Create(&TestOrganization2).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	deadline := now.AddDate(0, 1, 0)
	jobs := []*m.Job{&TestJob1, &TestJob2, &TestJob3}
	specs := []struct {
		title string
		org   m.Organization
		typ   string
		loc   string
	}{
		{"Backend Engineer", TestOrganization1, "FULL_TIME", "Bangkok"},
		{"Frontend Developer", TestOrganization1, "INTERNSHIP", "Remote"},
		{"Data Analyst", TestOrganization2, "FULL_TIME", "Chiang Mai"},
	}
	for i, s := range specs {
		*jobs[i] = m.Job{
			EditableJobInfo: m.EditableJobInfo{
				Title:       s.title,
				Description: s.title + " position",
				Location:    s.loc,
				SalaryMin:   ptr(30000),
				SalaryMax:   ptr(60000),
				JobType:     s.typ,
				Deadline:    &deadline,
			},
			OrganizationID:  s.org.ID,
			RecruiterUserID: s.org.RecruiterUserID,
			IsActive:        true,
			PostedAt:        now.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Omit("Skills").Create(jobs[i]).Error; err != nil {
			return err
		}
	}
	if err := db.Model(&TestJob1).Association("Skills").Append([]m.Skill{TestSkillGo, TestSkillSQL}); err != nil {
		return err
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
