package router

import (
	"github.com/communehq/commune/internal/application"
	"github.com/communehq/commune/internal/container"
	pginfra "github.com/communehq/commune/internal/infrastructure/postgres"
	handlers "github.com/communehq/commune/internal/interface/http"
	"github.com/communehq/commune/internal/router/modules"
	"github.com/communehq/commune/pkg/schema"
)

// InitModules builds every repository, service, and handler from the
// container singletons and registers the feature modules. Called once
// during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	accounts := pginfra.NewUserAccountRepository(pool)
	userProfiles := pginfra.NewUserProfileRepository(pool)
	verifications := pginfra.NewEmailVerificationDirectoryRepository(pool)
	bookmarks := pginfra.NewBookmarkDirectoryRepository(pool)
	groups := pginfra.NewGroupRepository(pool)
	members := pginfra.NewGroupMemberDirectoryRepository(pool)
	permissions := pginfra.NewGroupPermissionDirectoryRepository(pool)
	groupProfiles := pginfra.NewGroupProfileRepository(pool)
	templates := pginfra.NewTemplateRepository(pool)
	items := pginfra.NewItemRepository(pool)
	deleter := pginfra.NewDeletionExecutor(pool)

	certs := &application.CertIssuer{Accounts: accounts, Members: members}
	index := &application.ItemIndex{ES: container.GetES(), Index: cfg.ESItemsIndex, Logger: logger}

	accountService := &application.AccountService{
		Users:         users,
		Accounts:      accounts,
		Verifications: verifications,
		Bookmarks:     bookmarks,
		Certs:         certs,
		Random:        container.GetRandom(),
		Sessions:      container.GetSessions(),
		Mail:          container.GetRabbitPub(),
		MailEnabled:   cfg.MailSendEnabled,
		Logger:        logger,
	}
	userService := &application.UserService{
		Users:         users,
		Profiles:      userProfiles,
		Verifications: verifications,
		Bookmarks:     bookmarks,
		Certs:         certs,
		Logger:        logger,
	}
	groupService := &application.GroupService{
		Groups:      groups,
		Members:     members,
		Permissions: permissions,
		Profiles:    groupProfiles,
		UserProfs:   userProfiles,
		Certs:       certs,
		Random:      container.GetRandom(),
		Deleter:     deleter,
		Index:       index,
		Logger:      logger,
	}
	contentService := &application.ContentService{
		Templates:   templates,
		Items:       items,
		Members:     members,
		Permissions: permissions,
		UserProfs:   userProfiles,
		Certs:       certs,
		Random:      container.GetRandom(),
		Validator:   schema.New(),
		Index:       index,
		Logger:      logger,
	}

	sessions := container.GetSessions()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(accountService, container.GetCookies(), logger), sessions))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userService, logger), sessions))
	r.Add(modules.NewGroupModule(handlers.NewGroupHandler(groupService, logger), sessions))
	r.Add(modules.NewContentModule(handlers.NewContentHandler(contentService, logger), sessions))
}
