package sqlinline

const QInsertFunding = `--sql e16a2f50-5c9c-43a7-aa5d-6a22d8fcbf82
insert into fundings (id, user_name, user_email, amount, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::bigint, now())
returning id;
`

const QListFundings = `--sql 4bbc2cf1-e1a7-41b2-ac9b-cc973642a7a6
select id, user_name, user_email, amount, created_at,
       count(*) over() as total
from fundings
order by created_at desc, id
limit $1::int offset $2::int;
`
